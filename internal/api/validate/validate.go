// Package validate wraps go-playground/validator so every procedure input is
// checked against its declared schema before any handler runs, and failures
// name the field and the violated constraint.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report wire field names, not Go ones
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

type Errs []FieldError

func (e Errs) Error() string {
	var b strings.Builder
	for i, fe := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(fe.Field + ": " + fe.Constraint)
	}
	return b.String()
}

// Struct validates s against its struct tags. A nil return means the input
// passed every declared constraint.
func Struct(s any) Errs {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(Errs, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Constraint: constraintMsg(fe)})
		}
		return out
	}
	return Errs{{Field: "", Constraint: err.Error()}}
}

func constraintMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return fe.Tag()
	}
}
