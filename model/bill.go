package model

type Bill struct {
	DTO
	PublicCode string  `gorm:"unique;size:20" json:"publicCode"`
	OrderID    uint    `gorm:"not null;index" json:"orderId"`
	Order      Order   `gorm:"foreignKey:OrderID" json:"order"`
	Total      float64 `gorm:"type:decimal(10,2);not null" json:"total"`
	Status     string  `gorm:"default:PENDING" json:"status"` // PENDING, PARTIALLY_PAID, PAID

	Payments []Payment   `gorm:"foreignKey:BillID" json:"payments"`
	Splits   []BillSplit `gorm:"foreignKey:BillID" json:"splits"`
}

type Payment struct {
	DTO
	BillID      uint    `gorm:"not null;index" json:"billId"`
	Bill        Bill    `gorm:"foreignKey:BillID" json:"-"`
	Amount      float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method      string  `gorm:"not null" json:"method"` // CASH, CARD, QR, VOUCHER
	PaymentCode string  `gorm:"unique;size:30" json:"paymentCode"`
	Reference   string  `json:"reference,omitempty"`
}

// BillSplit is a seat-level share of a bill. Its paid flag is set
// directly and is never reconciled against the payment ledger.
type BillSplit struct {
	DTO
	BillID     uint    `gorm:"not null;index" json:"billId"`
	Bill       Bill    `gorm:"foreignKey:BillID" json:"-"`
	SeatNumber int     `gorm:"not null" json:"seatNumber"`
	Amount     float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Paid       bool    `gorm:"default:false" json:"paid"`
}

type CreateBillInput struct {
	OrderId uint     `json:"orderId" validate:"required,gt=0"`
	Total   *float64 `json:"total" validate:"omitempty,gt=0"`
}

type CreatePaymentInput struct {
	BillId    uint    `json:"billId" validate:"required,gt=0"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required,oneof=CASH CARD QR VOUCHER"`
	Reference string  `json:"reference" validate:"omitempty,max=100"`
}

type SplitInput struct {
	SeatNumber int     `json:"seatNumber" validate:"required,gt=0"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
}

type CreateSplitsInput struct {
	BillId uint         `json:"billId" validate:"required,gt=0"`
	Splits []SplitInput `json:"splits" validate:"required,min=1,dive"`
}
