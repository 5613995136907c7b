package models

import "errors"

var (
	ErrAdNotFound       = errors.New("models: ad not found")
	ErrCategoryNotFound = errors.New("models: category not found")
	ErrUserNotFound     = errors.New("models: user not found")
	ErrImageNotFound    = errors.New("models: image not found")

	ErrValidation  = errors.New("models: validation failed")
	ErrRateLimited = errors.New("models: rate limit exceeded")

	ErrDuplicateEmail        = errors.New("models: duplicate email")
	ErrDuplicateCategoryName = errors.New("models: duplicate category name")
	ErrInvalidEditToken      = errors.New("models: invalid edit token")
)
