package domain

import "errors"

// Domain-specific errors for tutorial operations.
var (
	ErrTutorialNotFound = errors.New("tutorial not found")
	ErrInvalidID        = errors.New("invalid tutorial id")
	ErrEmptyContent     = errors.New("content can not be empty")
	ErrEmptyUpdate      = errors.New("data to update can not be empty")
	ErrValidation       = errors.New("validation failed")
)
