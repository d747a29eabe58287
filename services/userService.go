package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Kariqs/chapaquente-api/models"
	"github.com/Kariqs/chapaquente-api/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	MinPasswordLength = 6
	DefaultUserLimit  = 50
)

type UserService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewUserService(db *gorm.DB, log *zap.Logger) *UserService {
	return &UserService{db: db, log: log.Named("users")}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and starts its loyalty cycle.
func (s *UserService) Register(ctx context.Context, data models.RegisterData) (*models.User, error) {
	name := strings.TrimSpace(data.Name)
	email := normalizeEmail(data.Email)
	if name == "" || email == "" || data.Password == "" {
		return nil, ErrMissingFields
	}
	if len(data.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(data.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            email,
		PasswordHash:     hash,
		LoyaltyStartedAt: &now,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrEmailTaken
		}
		return tx.Create(&user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered", zap.String("user_id", user.ID))
	return &user, nil
}

// Authenticate checks e-mail and password. Unknown e-mails and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, data models.LoginData) (*models.User, error) {
	email := normalizeEmail(data.Email)
	if email == "" || data.Password == "" {
		return nil, ErrMissingCredentials
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.ComparePasswords(user.PasswordHash, data.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes name, e-mail and password. Empty fields are left
// alone; a new password needs the current one.
func (s *UserService) UpdateProfile(ctx context.Context, id string, data models.UpdateProfileData) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		changes := map[string]any{}
		if name := strings.TrimSpace(data.Name); name != "" {
			changes["name"] = name
		}
		if email := normalizeEmail(data.Email); email != "" && email != user.Email {
			var taken int64
			if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				return ErrEmailTaken
			}
			changes["email"] = email
		}
		if data.NewPassword != "" {
			if data.CurrentPassword == "" {
				return ErrCurrentPasswordNeeded
			}
			if !utils.ComparePasswords(user.PasswordHash, data.CurrentPassword) {
				return ErrWrongPassword
			}
			if len(data.NewPassword) < MinPasswordLength {
				return ErrPasswordTooShort
			}
			hash, err := utils.HashPassword(data.NewPassword)
			if err != nil {
				return err
			}
			changes["password_hash"] = hash
		}

		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(changes).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RedeemLoyalty spends a full card. The reset is conditional on the stored
// balance so two concurrent redemptions cannot both succeed.
func (s *UserService) RedeemLoyalty(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.LoyaltyPoints < models.MaxLoyaltyPoints {
			return ErrNotEnoughPoints
		}

		now := time.Now().UTC()
		res := tx.Model(&models.User{}).
			Where("id = ? AND loyalty_points >= ?", id, models.MaxLoyaltyPoints).
			Updates(map[string]any{"loyalty_points": 0, "loyalty_started_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotEnoughPoints
		}
		user.LoyaltyPoints = 0
		user.LoyaltyStartedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Loyalty reward redeemed", zap.String("user_id", id))
	return &user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = DefaultUserLimit
	}
	if offset < 0 {
		offset = 0
	}
	users := []models.User{}
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (s *UserService) SetAdmin(ctx context.Context, id string, isAdmin bool) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Model(&user).Update("is_admin", isAdmin).Error; err != nil {
			return err
		}
		user.IsAdmin = isAdmin
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Admin flag changed", zap.String("user_id", id), zap.Bool("is_admin", isAdmin))
	return &user, nil
}
