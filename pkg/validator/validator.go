// Package validator adapts go-playground/validator to echo's Validator
// interface so request DTOs are checked against their validate tags at bind
// time.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps a shared validator instance. Register it on the echo
// server once; handlers then call c.Validate on bound request structs.
type CustomValidator struct {
	v *validator.Validate
}

// New creates a CustomValidator with the default tag set.
func New() *CustomValidator {
	return &CustomValidator{v: validator.New()}
}

// Validate checks i against its validate struct tags.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
