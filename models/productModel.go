package models

import (
	"time"

	"gorm.io/datatypes"
)

type Category string

const (
	CategoryHotDog   Category = "HotDog"
	CategorySandwich Category = "Sandwich"
	CategorySideDish Category = "SideDish"
	CategoryBeverage Category = "Beverage"
)

var Categories = []Category{CategoryHotDog, CategorySandwich, CategorySideDish, CategoryBeverage}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is never hard-deleted; clearing IsActive hides it from the
// storefront while order_items keep their name/price snapshot.
type Product struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Name        string                      `json:"name" gorm:"size:255;not null"`
	Description string                      `json:"description" gorm:"type:text"`
	Price       float64                     `json:"price" gorm:"type:decimal(10,2);not null"`
	Image       string                      `json:"image" gorm:"type:text"`
	Category    Category                    `json:"category" gorm:"size:50;not null;index:idx_products_category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	IsActive    bool                        `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time                   `json:"createdAt"`
	Inventory   *Stock                      `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductListing is a product row joined with its stock quantity.
type ProductListing struct {
	ID          uint                        `json:"id"`
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Price       float64                     `json:"price"`
	Image       string                      `json:"image"`
	Category    Category                    `json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	IsActive    bool                        `json:"isActive"`
	Stock       int                         `json:"stock"`
}

type CreateProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Image       string   `json:"image"`
	Category    Category `json:"category" binding:"required"`
	Tags        []string `json:"tags"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
}

// UpdateProductInput carries a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" binding:"omitempty,gt=0"`
	Image       *string   `json:"image"`
	Category    *Category `json:"category"`
	Tags        *[]string `json:"tags"`
	IsActive    *bool     `json:"isActive"`
}
