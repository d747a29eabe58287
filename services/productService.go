package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Kariqs/chapaquente-api/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultInitialStock = 50

const listingColumns = "p.id, p.name, p.description, p.price, p.image, p.category, p.tags, p.is_active, " +
	"COALESCE(s.quantity, 0) AS stock"

type ProductService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProductService(db *gorm.DB, log *zap.Logger) *ProductService {
	return &ProductService{db: db, log: log.Named("products")}
}

func (s *ProductService) listings(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("products AS p").
		Select(listingColumns).
		Joins("LEFT JOIN stock AS s ON s.product_id = p.id")
}

// List returns the catalogue ordered by category then name. An empty
// category means all of them.
func (s *ProductService) List(ctx context.Context, category models.Category, activeOnly bool) ([]models.ProductListing, error) {
	query := s.listings(ctx)
	if category != "" {
		query = query.Where("p.category = ?", category)
	}
	if activeOnly {
		query = query.Where("p.is_active = ?", true)
	}

	products := []models.ProductListing{}
	if err := query.Order("p.category, p.name").Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.ProductListing, error) {
	var product models.ProductListing
	err := s.listings(ctx).Where("p.id = ?", id).Take(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts the product and its stock row together.
func (s *ProductService) Create(ctx context.Context, input models.CreateProductInput) (*models.ProductListing, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price <= 0 || input.Category == "" {
		return nil, ErrInvalidProduct
	}
	if !input.Category.IsValid() {
		return nil, ErrInvalidCategory
	}
	quantity := DefaultInitialStock
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrNegativeQuantity
		}
		quantity = *input.Stock
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	product := models.Product{
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Category:    input.Category,
		Tags:        tags,
		IsActive:    true,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return tx.Create(&models.Stock{ProductID: product.ID, Quantity: quantity, UpdatedAt: time.Now().UTC()}).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Product created", zap.Uint("product_id", product.ID), zap.String("name", product.Name))
	return s.Get(ctx, product.ID)
}

// Update applies the non-nil fields of input.
func (s *ProductService) Update(ctx context.Context, id uint, input models.UpdateProductInput) (*models.ProductListing, error) {
	changes := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidProduct
		}
		changes["name"] = name
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, ErrInvalidProduct
		}
		changes["price"] = *input.Price
	}
	if input.Image != nil {
		changes["image"] = *input.Image
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, ErrInvalidCategory
		}
		changes["category"] = *input.Category
	}
	if input.Tags != nil {
		changes["tags"] = datatypes.JSONSlice[string](*input.Tags)
	}
	if input.IsActive != nil {
		changes["is_active"] = *input.IsActive
	}

	if err := s.update(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Deactivate hides a product from the storefront. Rows are never deleted so
// order history keeps resolving.
func (s *ProductService) Deactivate(ctx context.Context, id uint) error {
	if err := s.update(ctx, id, map[string]any{"is_active": false}); err != nil {
		return err
	}
	s.log.Info("Product deactivated", zap.Uint("product_id", id))
	return nil
}

func (s *ProductService) SetImage(ctx context.Context, id uint, url string) (*models.ProductListing, error) {
	if err := s.update(ctx, id, map[string]any{"image": url}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ProductService) update(ctx context.Context, id uint, changes map[string]any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").Where("id = ?", id).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&models.Product{}).Where("id = ?", id).Updates(changes).Error
	})
}
