package models

import "time"

// MaxLoyaltyPoints is the stamp count that unlocks a reward.
const MaxLoyaltyPoints = 10

type User struct {
	ID               string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name             string     `json:"name" gorm:"size:255;not null"`
	Email            string     `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash     string     `json:"-" gorm:"size:255;not null"`
	LoyaltyPoints    int        `json:"loyaltyPoints" gorm:"not null;default:0"`
	LoyaltyStartedAt *time.Time `json:"loyaltyStartedAt,omitempty"`
	IsAdmin          bool       `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"-"`
}

// GuestUser is handed out by the guest login and never persisted.
type GuestUser struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         *string `json:"email"`
	LoyaltyPoints int     `json:"loyaltyPoints"`
	IsAdmin       bool    `json:"isAdmin"`
	IsGuest       bool    `json:"isGuest"`
}

type RegisterData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GuestData struct {
	Name string `json:"name"`
}

type UpdateProfileData struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
