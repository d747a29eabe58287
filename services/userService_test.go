package services

import (
	"context"
	"testing"

	"github.com/Kariqs/chapaquente-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserService_Register(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, zap.NewNop())
	ctx := context.Background()

	user, err := svc.Register(ctx, models.RegisterData{Name: "Ana", Email: " Ana@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Zero(t, user.LoyaltyPoints)
	assert.NotNil(t, user.LoyaltyStartedAt)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = svc.Register(ctx, models.RegisterData{Name: "Other", Email: "ANA@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, models.RegisterData{Name: "Bo", Email: "bo@example.com", Password: "12345"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(ctx, models.RegisterData{Email: "cy@example.com", Password: "123456"})
	assert.ErrorIs(t, err, ErrMissingFields)

	assert.Equal(t, int64(1), countRows(t, db, &models.User{}))
}

func TestUserService_Authenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterData{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, models.LoginData{Email: "ANA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	_, err = svc.Authenticate(ctx, models.LoginData{Email: "ana@example.com", Password: "wrong!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, models.LoginData{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, models.LoginData{Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc := NewUserService(newTestDB(t), zap.NewNop())
	ctx := context.Background()

	ana, err := svc.Register(ctx, models.RegisterData{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, models.RegisterData{Name: "Bo", Email: "bo@example.com", Password: "secret1"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, ana.ID, models.UpdateProfileData{Name: "Ana Maria", Email: "Ana.Maria@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "ana.maria@example.com", updated.Email)

	_, err = svc.UpdateProfile(ctx, ana.ID, models.UpdateProfileData{Email: "bo@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.UpdateProfile(ctx, ana.ID, models.UpdateProfileData{NewPassword: "another1"})
	assert.ErrorIs(t, err, ErrCurrentPasswordNeeded)

	_, err = svc.UpdateProfile(ctx, ana.ID, models.UpdateProfileData{CurrentPassword: "nope!!", NewPassword: "another1"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.UpdateProfile(ctx, ana.ID, models.UpdateProfileData{CurrentPassword: "secret1", NewPassword: "another1"})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, models.LoginData{Email: "ana.maria@example.com", Password: "another1"})
	assert.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, "missing", models.UpdateProfileData{Name: "X"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_RedeemLoyalty(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, zap.NewNop())
	ctx := context.Background()

	short := createUser(t, db, "short@example.com", 9)
	full := createUser(t, db, "full@example.com", 10)

	_, err := svc.RedeemLoyalty(ctx, short.ID)
	assert.ErrorIs(t, err, ErrNotEnoughPoints)
	assert.Equal(t, 9, pointsOf(t, db, short.ID))

	redeemed, err := svc.RedeemLoyalty(ctx, full.ID)
	require.NoError(t, err)
	assert.Zero(t, redeemed.LoyaltyPoints)
	require.NotNil(t, redeemed.LoyaltyStartedAt)
	assert.True(t, redeemed.LoyaltyStartedAt.After(*full.LoyaltyStartedAt) || redeemed.LoyaltyStartedAt.Equal(*full.LoyaltyStartedAt))
	assert.Equal(t, 0, pointsOf(t, db, full.ID))

	_, err = svc.RedeemLoyalty(ctx, full.ID)
	assert.ErrorIs(t, err, ErrNotEnoughPoints)

	_, err = svc.RedeemLoyalty(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_AdminManagement(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, zap.NewNop())
	ctx := context.Background()

	user := createUser(t, db, "staff@example.com", 0)
	createUser(t, db, "other@example.com", 0)

	promoted, err := svc.SetAdmin(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	stored, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)

	_, err = svc.SetAdmin(ctx, "missing", true)
	assert.ErrorIs(t, err, ErrUserNotFound)

	users, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	page, err := svc.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
