package model

type Table struct {
	DTO
	Number         int    `gorm:"uniqueIndex;not null" json:"number"`
	Seats          int    `gorm:"default:4" json:"seats"`
	Occupied       bool   `gorm:"default:false" json:"occupied"`
	TableGroupID   *uint  `json:"tableGroupId,omitempty"`
	CurrentOrderID *uint  `json:"currentOrderId,omitempty"`

	TableGroup *TableGroup `gorm:"foreignKey:TableGroupID" json:"-"`
}

type TableGroup struct {
	DTO
	Name   string  `json:"name"`
	Tables []Table `gorm:"foreignKey:TableGroupID" json:"tables"`
}

type MergeTablesInput struct {
	TableIds []uint `json:"tableIds" validate:"required,min=2,dive,gt=0"`
	Name     string `json:"name" validate:"omitempty,max=50"`
}
