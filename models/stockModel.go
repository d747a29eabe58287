package models

import "time"

type Stock struct {
	ProductID uint      `json:"productId" gorm:"primaryKey;autoIncrement:false"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Stock) TableName() string {
	return "stock"
}

// StockLevel is the ledger view of one product. UpdatedAt is nil when the
// product has no stock row yet.
type StockLevel struct {
	ProductID   uint       `json:"productId"`
	ProductName string     `json:"productName"`
	Category    Category   `json:"category,omitempty"`
	Quantity    int        `json:"quantity"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type StockUpdate struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  *int `json:"quantity" binding:"required"`
}
