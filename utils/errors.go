// utils/errors.go
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrNotConfigured  = errors.New("feature not configured")
	ErrInappropriate  = errors.New("message contains inappropriate language")
	ErrServiceFailure = errors.New("upstream service failure")
)

var registerOnce sync.Once

func init() {
	RegisterJSONTagNames()
}

// RegisterJSONTagNames makes gin's validator report JSON field names.
func RegisterJSONTagNames() {
	registerOnce.Do(func() {
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
	})
}

// ValidationDetails maps each invalid field to a readable message. Errors that
// are not validation errors (malformed JSON, wrong types) are reported under
// "body".
func ValidationDetails(err error) map[string]string {
	details := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fieldPath(fe)] = fieldMessage(fe)
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		details[typeErr.Field] = fmt.Sprintf("must be a %s", typeErr.Type.String())
	case errors.Is(err, io.EOF):
		details["body"] = "request body is empty"
	default:
		details["body"] = "malformed JSON"
	}
	return details
}

// fieldPath drops the root struct name: "TripRequest.email" -> "email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items or characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items or characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "datetime":
		return "must match the format " + datetimeHint(fe.Param())
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

func datetimeHint(layout string) string {
	switch layout {
	case "2006-01-02":
		return "YYYY-MM-DD"
	case "15:04":
		return "HH:MM"
	default:
		return layout
	}
}
