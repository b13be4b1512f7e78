package usecase

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InputError lists per-field problems of an add form, keyed by json name.
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// NewValidator returns a validator that reports fields by their json name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func checkInput(v *validator.Validate, in any) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &InputError{Fields: map[string]string{}}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = inputMessage(fe)
	}
	return out
}

func inputMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Заполни все поля!"
	case "min":
		return "Слишком короткое значение (минимум " + fe.Param() + ")"
	case "max":
		return "Слишком длинное значение (максимум " + fe.Param() + ")"
	case "gt":
		return "Значение должно быть больше " + fe.Param()
	case "gte":
		return "Значение должно быть не меньше " + fe.Param()
	case "lte":
		return "Значение должно быть не больше " + fe.Param()
	}
	return "Некорректное значение"
}
