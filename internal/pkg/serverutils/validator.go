package serverutils

import (
	"fmt"

	"ai-chat-demo-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks the `validate` struct tags of a request DTO and
// converts the first failure into a ValidationError. Runs before any
// upstream call.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return apperrors.NewValidation(fmt.Sprintf("field %s failed on %s", first.Field(), first.Tag()))
		}
		return apperrors.NewValidation(err.Error())
	}
	return nil
}
