package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator provides struct validation using `validate` tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{
		v: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks obj against its validate tags.
func (v *Validator) Validate(obj interface{}) error {
	if err := v.v.Struct(obj); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("%s failed on the %q rule", first.Namespace(), first.Tag())
		}
		return err
	}
	return nil
}

// ValidateVar checks a single value against the given rules.
func (v *Validator) ValidateVar(value interface{}, rules string) error {
	return v.v.Var(value, rules)
}
