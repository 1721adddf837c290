package transport

import "github.com/shopspring/decimal"

type SignUpRequest struct {
	FullName string `json:"full_name" form:"fullName" validate:"required,min=3,max=100"`
	Username string `json:"username"  form:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email"     form:"email"    validate:"required,email,max=100"`
	Password string `json:"password"  form:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,max=100"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description" validate:"required"`
}

// PatchProductRequest carries only the fields the caller wants to change;
// nil means "leave as is".
type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
}
