package initializers

import (
	"errors"
	"strings"
	"time"

	"github.com/Kariqs/chapaquente-api/models"
	"github.com/Kariqs/chapaquente-api/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const seedStockQuantity = 50

var seedProducts = []models.Product{
	{Name: "Clássico Imperial", Description: "Salsicha artesanal defumada, pão brioche tostado na manteiga, cebola caramelizada no vinho tinto, mostarda Dijon e ketchup trufado.", Price: 28.90, Image: "/classico_imperial.webp", Category: models.CategoryHotDog, Tags: []string{"Mais Vendido", "Chef"}},
	{Name: "Bacon Royale", Description: "Dupla de salsichas premium, bacon crocante defumado em madeira de macieira, queijo cheddar derretido e molho barbecue artesanal.", Price: 34.90, Image: "/bacon_royale.webp", Category: models.CategoryHotDog, Tags: []string{"Premium"}},
	{Name: "Vegetariano Gourmet", Description: "Salsicha vegetal premium, guacamole fresco, pico de gallo, sour cream e pimenta jalapeño em conserva.", Price: 32.90, Image: "/vegetariano_gourmet.webp", Category: models.CategoryHotDog, Tags: []string{"Veggie", "Novo"}},
	{Name: "Tropicália", Description: "Salsicha suína com abacaxi grelhado, coentro fresco, molho teriyaki caseiro e gergelim torrado.", Price: 31.90, Image: "/tropicalia.webp", Category: models.CategoryHotDog, Tags: []string{"Tropical"}},
	{Name: "Texano Extreme", Description: "Três salsichas jumbo, pulled pork desfiado, coleslaw, picles artesanal e molho chipotle defumado.", Price: 42.90, Image: "/texano_extreme.webp", Category: models.CategoryHotDog, Tags: []string{"XL", "Favorito"}},
	{Name: "Batata Rústica", Description: "Batatas em fatias grossas, fritas na hora com casca, temperadas com alecrim e sal marinho.", Price: 18.90, Image: "/batata_rustica.webp", Category: models.CategorySideDish, Tags: []string{"Acompanhamento"}},
	{Name: "Coca-Cola Lata", Description: "Refrigerante Coca-Cola original em lata gelada de 350ml.", Price: 6.00, Image: "/coca_lata.webp", Category: models.CategoryBeverage, Tags: []string{"Gelado"}},
	{Name: "Coca-Cola 2L", Description: "Refrigerante Coca-Cola original garrafa de 2 litros.", Price: 14.00, Image: "/coca_2l.webp", Category: models.CategoryBeverage, Tags: []string{"Família"}},
	{Name: "Guaraná Antarctica Lata", Description: "Refrigerante Guaraná Antarctica em lata gelada de 350ml.", Price: 5.50, Image: "/guarana_lata.webp", Category: models.CategoryBeverage, Tags: []string{"Gelado"}},
	{Name: "Água Mineral 500ml", Description: "Água mineral sem gás, garrafa de 500ml.", Price: 4.00, Image: "/agua_mineral.webp", Category: models.CategoryBeverage, Tags: []string{"Natural"}},
}

type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

// SeedDatabase inserts the starter catalogue (only into an empty products
// table) and the admin account (only when its e-mail is unused).
func SeedDatabase(db *gorm.DB, opts SeedOptions, log *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			for _, seed := range seedProducts {
				product := seed
				product.IsActive = true
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
				if err := tx.Create(&models.Stock{ProductID: product.ID, Quantity: seedStockQuantity}).Error; err != nil {
					return err
				}
				log.Info("Seeded product", zap.String("name", product.Name))
			}
		} else {
			log.Info("Catalogue already populated, skipping products", zap.Int64("count", count))
		}

		email := strings.ToLower(opts.AdminEmail)
		var admin models.User
		err := tx.Where("email = ?", email).First(&admin).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := utils.HashPassword(opts.AdminPassword)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		admin = models.User{
			ID:               uuid.NewString(),
			Name:             "Administrador",
			Email:            email,
			PasswordHash:     hash,
			IsAdmin:          true,
			LoyaltyStartedAt: &now,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		log.Info("Seeded admin user", zap.String("email", email))
		return nil
	})
}
