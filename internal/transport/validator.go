package transport

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mystore/storefront/internal/domain"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate satisfies echo.Validator. Failures surface as domain.ErrValidation
// so handlers can translate them uniformly.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
