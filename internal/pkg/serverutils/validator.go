package serverutils

import (
	"reflect"
	"strings"

	"hcp-interaction-be/internal/dto"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json name so error locs match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRequest runs struct-tag validation and converts failures into the
// field-level {"detail": [...]} error shape.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	details := make([]dto.FieldDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, dto.FieldDetail{
			Loc: []string{"body", fe.Field()},
			Msg: validationMessage(fe),
		})
	}
	return &dto.DetailError{Status: 422, Detail: details}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "datetime":
		return "invalid date format, expected YYYY-MM-DD"
	case "oneof":
		return "value must be one of: " + fe.Param()
	default:
		return "failed validation on '" + fe.Tag() + "'"
	}
}
