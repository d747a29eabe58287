package services

import "errors"

var (
	ErrMissingItems        = errors.New("order must contain at least one item")
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrOrderIDExhausted    = errors.New("could not allocate a unique order id")

	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProduct   = errors.New("name, price and category are required")
	ErrInvalidCategory  = errors.New("unknown product category")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrEmptyBatch       = errors.New("stock update list must not be empty")

	ErrMissingFields         = errors.New("name, email and password are required")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters")
	ErrEmailTaken            = errors.New("email already registered")
	ErrMissingCredentials    = errors.New("email and password are required")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrCurrentPasswordNeeded = errors.New("current password is required to change the password")
	ErrWrongPassword         = errors.New("current password is incorrect")
	ErrNotEnoughPoints       = errors.New("10 stamps are required to redeem the reward")

	ErrInvalidCoordinates = errors.New("lat and lng must be valid coordinates")
)
