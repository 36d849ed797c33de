package session

import "errors"

var (
	ErrNotSignedIn     = errors.New("not signed in")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrInvalidUser     = errors.New("name and email are required")
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
)
