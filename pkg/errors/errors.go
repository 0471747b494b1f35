package errors

import "errors"

var (
	ErrInvalidTile        = errors.New("invalid tile")
	ErrInvalidHand        = errors.New("invalid hand")
	ErrInvalidCardFile    = errors.New("invalid card file")
	ErrInvalidCatalog     = errors.New("invalid catalog file")
	ErrTemplatesNotLoaded = errors.New("templates not loaded")
	ErrHandNotFound       = errors.New("hand not found")
	ErrRunNotFound        = errors.New("generation run not found")
	ErrCacheMiss          = errors.New("cache miss")

	ErrAdminNotFound        = errors.New("admin not found")
	ErrAdminDisabled        = errors.New("admin disabled")
	ErrInvalidAdminPassword = errors.New("invalid admin password")
	ErrUnauthorized         = errors.New("unauthorized")
)
