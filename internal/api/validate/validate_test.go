package validate_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/kanhadewangan/trpc-blog/internal/api/validate"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Title string `json:"title" validate:"omitempty,min=5"`
	Age   int    `json:"age" validate:"omitempty,gte=0"`
}

func TestStructPasses(t *testing.T) {
	c := qt.New(t)
	errs := validate.Struct(&sample{Name: "Ann", Email: "ann@x.com", Title: "Hello World"})
	c.Assert(errs, qt.IsNil)
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	c := qt.New(t)
	errs := validate.Struct(&sample{Email: "not-an-email"})
	c.Assert(errs, qt.HasLen, 2)
	c.Assert(errs[0].Field, qt.Equals, "name")
	c.Assert(errs[0].Constraint, qt.Equals, "required")
	c.Assert(errs[1].Field, qt.Equals, "email")
	c.Assert(errs[1].Constraint, qt.Equals, "must be a valid email")
}

func TestStructMinLength(t *testing.T) {
	c := qt.New(t)
	errs := validate.Struct(&sample{Name: "Ann", Email: "ann@x.com", Title: "Hey"})
	c.Assert(errs, qt.HasLen, 1)
	c.Assert(errs[0].Field, qt.Equals, "title")
	c.Assert(errs[0].Constraint, qt.Equals, "must be at least 5 characters")
}

func TestErrsError(t *testing.T) {
	c := qt.New(t)
	errs := validate.Errs{
		{Field: "name", Constraint: "required"},
		{Field: "email", Constraint: "must be a valid email"},
	}
	c.Assert(errs.Error(), qt.Equals, "name: required; email: must be a valid email")
}
