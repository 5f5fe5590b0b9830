package model

type MenuItem struct {
	DTO
	Name      string  `gorm:"not null" json:"name"`
	Slug      string  `gorm:"uniqueIndex;size:80" json:"slug"`
	Category  string  `json:"category"` // FOOD, DRINK, DESSERT...
	Price     float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Available bool    `gorm:"default:true" json:"available"`
}
