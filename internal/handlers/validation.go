package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/nullable"
	"github.com/BruksfildServices01/realty-api/internal/validators"
)

var setupValidatorOnce sync.Once

// setupValidator makes gin's validator report json field names and know
// the custom tags used by the request structs.
func setupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return validators.IsUsername(fl.Field().String())
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if n, ok := field.Interface().(interface{ Interface() any }); ok {
			return n.Interface()
		}
		return nil
	}, nullable.Value[string]{}, nullable.Value[uint]{})
}

// validationError turns validator failures into per-field messages.
func validationError(err error) (error, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}

	fe := httperr.FieldErrors{}
	for _, e := range ve {
		fe.Add(e.Field(), fieldMessage(e))
	}
	return fe.Err(), true
}

func fieldMessage(e validator.FieldError) string {
	isText := e.Kind() == reflect.String

	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "http_url", "url":
		return "Enter a valid URL."
	case "username":
		return "Enter a valid username. Letters, digits and @/./+/-/_ only."
	case "datetime":
		return "Date has wrong format. Use YYYY-MM-DD."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(e.Value()))
	case "min":
		if isText {
			return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "max":
		if isText {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param())
	}
	return "Invalid value."
}
