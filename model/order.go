package model

import "time"

type Order struct {
	DTO
	PublicCode   string      `gorm:"unique;size:20" json:"publicCode"`
	TableID      *uint       `json:"tableId,omitempty"`
	Table        *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	TableGroupID *uint       `json:"tableGroupId,omitempty"`
	TableGroup   *TableGroup `gorm:"foreignKey:TableGroupID" json:"tableGroup,omitempty"`
	Status       string      `gorm:"default:OPEN" json:"status"` // OPEN, CLOSED
	TotalAmount  float64     `gorm:"type:decimal(10,2)" json:"totalAmount"`
	ClosedAt     *time.Time  `json:"closedAt,omitempty"`
	CreatedBy    uint        `json:"createdBy"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

type OpenOrderInput struct {
	TableId uint `json:"tableId" validate:"required,gt=0"`
}
