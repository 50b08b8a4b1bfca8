package listings

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/JaimeStill/bizz/internal/location"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("confirmation", func(fl validator.FieldLevel) bool {
		_, ok := location.ParseConfirmation(fl.Field().String())
		return ok
	})
	return v
}

// validate checks cmd against its struct tags and wraps any failure in
// ErrInvalidListing with the first offending field.
func validate(v *validator.Validate, cmd any) error {
	err := v.Struct(cmd)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Errorf("%w: %s failed %s", ErrInvalidListing, fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidListing, err)
}
