package domain

import "errors"

// Taxonomy shared by the stores, the services and the HTTP layer. Handlers
// match with errors.Is and translate to a status code or a redirect marker.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrDenied             = errors.New("not enough rights")
	ErrInvalidAsset       = errors.New("invalid asset")
	ErrMissingAsset       = errors.New("missing asset")
	ErrAssetTooLarge      = errors.New("asset too large")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExist   = errors.New("user already exist")
)
