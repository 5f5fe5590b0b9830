package model

type OrderItem struct {
	DTO
	OrderID    uint     `gorm:"not null;index" json:"orderId"`
	Order      Order    `gorm:"foreignKey:OrderID" json:"-"`
	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID" json:"menuItem"`
	Quantity   int      `gorm:"not null" json:"quantity"`
	UnitPrice  float64  `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	Notes      string   `gorm:"type:text" json:"notes"`
	Status     string   `gorm:"default:PENDING" json:"status"` // PENDING, SERVED, CANCELLED
	ShareID    *uint    `json:"shareId,omitempty"`

	Spots []Spot `gorm:"foreignKey:OrderItemID" json:"spots"`
}

// Spot tags an order item with a seat number for split purposes.
type Spot struct {
	DTO
	OrderItemID uint `gorm:"not null;index" json:"orderItemId"`
	SeatNumber  int  `gorm:"not null" json:"seatNumber"`
}

type AddOrderItemInput struct {
	MenuItemId  uint   `json:"menuItemId" validate:"required,gt=0"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	Notes       string `json:"notes" validate:"omitempty,max=500"`
	SeatNumbers []int  `json:"seatNumbers" validate:"omitempty,dive,gt=0"`
}

type UpdateOrderItemInput struct {
	Quantity    *int    `json:"quantity" validate:"omitempty,gt=0"`
	Notes       *string `json:"notes" validate:"omitempty,max=500"`
	Status      *string `json:"status" validate:"omitempty"`
	SeatNumbers *[]int  `json:"seatNumbers" validate:"omitempty,dive,gt=0"`
}

type ReplaceOrderItemsInput struct {
	Items []AddOrderItemInput `json:"items" validate:"dive"`
}

type ShareAssignment struct {
	ShareId uint   `json:"shareId" validate:"required,gt=0"`
	ItemIds []uint `json:"itemIds" validate:"required,dive,gt=0"`
}

type AssignSharesInput struct {
	Shares []ShareAssignment `json:"shares" validate:"required,dive"`
}
