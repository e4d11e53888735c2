package manifest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"mock-generator/internal/descriptor"
	"mock-generator/internal/diagnostic"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report YAML paths rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	if err := v.RegisterValidation("access", validAccess); err != nil {
		panic(err)
	}

	return v
}

func validAccess(fl validator.FieldLevel) bool {
	_, ok := descriptor.ParseAccessibility(fl.Field().String())
	return ok
}

// Validate validates a manifest: struct rules first, then the
// cross-references between types. Cross-references are only checked on a
// structurally valid file.
func Validate(f *File) *diagnostic.Diagnostics {
	_, res := check(f)
	return res
}

func check(f *File) (*descriptor.Snapshot, *diagnostic.Diagnostics) {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeInvalidManifest, "manifest is nil", "", "")
		return nil, res
	}

	validateStruct(res, f)

	if res.HasErrors() {
		return nil, res
	}

	l := newLinker(f, res)

	return l.link(), res
}

func validateStruct(res *diagnostic.Diagnostics, f *File) {
	err := validate.Struct(f)
	if err == nil {
		return
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		res.AddError(diagnostic.CodeInvalidManifest, err.Error(), "", "")
		return
	}

	for _, ve := range valErrs {
		res.AddError(diagnostic.CodeInvalidManifest, formatValidationError(ve), "", fieldPath(ve))
	}
}

// fieldPath turns "File.types[0].members[1].name" into "types[0].members[1].name".
func fieldPath(ve validator.FieldError) string {
	_, path, ok := strings.Cut(ve.Namespace(), ".")
	if !ok {
		return ve.Namespace()
	}

	return path
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required", "required_if", "required_unless":
		return "required"
	case "eq":
		return fmt.Sprintf("must equal %s, got %q", ve.Param(), ve.Value())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s, got %q", ve.Param(), ve.Value())
	case "access":
		return fmt.Sprintf("unknown accessibility %q", ve.Value())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}

		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
