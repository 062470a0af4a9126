package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken        = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials  = errors.New("INVALID_CREDENTIALS")
	ErrNotAdmin            = errors.New("NOT_ADMIN")
	ErrEmailTaken          = errors.New("EMAIL_TAKEN")
	ErrProductNotFound     = errors.New("PRODUCT_NOT_FOUND")
	ErrOutOfStock          = errors.New("OUT_OF_STOCK")
	ErrValidation          = errors.New("VALIDATION_FAILED")
	ErrConfirmationMissing = errors.New("CONFIRMATION_REQUIRED")
)
