package db

import "errors"

// Domain-level database error sentinels.
var (
	// Catalog errors
	ErrItemNotFound     = errors.New("catalog item not found")
	ErrCategoryNotFound = errors.New("category not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
