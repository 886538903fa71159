package sanitize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var localImagePattern = regexp.MustCompile(`^/images/.+\.(?i:png|jpg|jpeg)$`)

// fieldLabels maps struct field names to the wording used in messages.
var fieldLabels = map[string]string{
	"Title":       "Title",
	"Description": "Description",
	"Location":    "Location",
	"URL":         "Website URL",
	"Image":       "Image",
}

// Validator wraps the go-playground validator with the catalog's custom tags.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("localimage", func(fl validator.FieldLevel) bool {
		return localImagePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidateStruct checks the tagged fields of s, skipping the named fields,
// and appends one message per failing field to errs. prefix is prepended to
// field paths ("Product" gives "Product.Title").
func (v *Validator) ValidateStruct(errs *Errors, prefix string, s any, skip ...string) {
	var err error
	if len(skip) > 0 {
		err = v.validate.StructExcept(s, skip...)
	} else {
		err = v.validate.Struct(s)
	}
	if err == nil {
		return
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		errs.Add("", err.Error())
		return
	}
	for _, fe := range validationErrs {
		errs.Add(prefix+"."+fe.Field(), formatFieldError(fe))
	}
}

func formatFieldError(fe validator.FieldError) string {
	if fe.Field() == "NumberOfDepartments" {
		return "Number of departments must be between 1 and 500."
	}
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required.", label)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "startswith":
		return fmt.Sprintf("%s must start with %s", label, fe.Param())
	case "localimage":
		return "Image must be a local /images path (png/jpg/jpeg)."
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
