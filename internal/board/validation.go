package board

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/thenoetrevino/snipboard/internal/models"
)

// newValidator returns a validator that knows the "palette" tag
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "palette", func(fl validator.FieldLevel) bool {
		return models.Color(fl.Field().String()).Valid()
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// mustRegister panics when a custom tag cannot be registered
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("board: register %q validation: %v", tag, err))
	}
}

// validateDraft trims the draft and checks it
func (c *Controller) validateDraft(draft models.Draft) (models.Draft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if strings.TrimSpace(draft.Code) == "" {
		draft.Code = ""
	}
	return draft, toValidationError(c.validate.Struct(draft))
}

// validatePatch checks the fields a patch sets
func (c *Controller) validatePatch(patch models.Patch) error {
	var fields []FieldError
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := c.validate.Var(title, "required,max=255"); err != nil {
			fields = append(fields, fieldErrors("title", err)...)
		}
	}
	if patch.Code != nil && strings.TrimSpace(*patch.Code) == "" {
		fields = append(fields, FieldError{Field: "code", Message: "is required"})
	}
	if patch.Color != nil && !patch.Color.Valid() {
		fields = append(fields, FieldError{Field: "color", Message: "must be one of the palette colors"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Field: "draft", Message: err.Error()}}}
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return &ValidationError{Fields: fields}
}

func fieldErrors(field string, err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: field, Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: field, Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "palette":
		return "must be one of the palette colors"
	}
	return "is invalid (" + fe.Tag() + ")"
}
