package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// New returns a validator configured the way the service reports errors:
// JSON tag names in field paths, struct-level validation enabled.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerTagNames(v)
	return v
}

// Init configures the global validator used by Gin's binding so request
// structs report the same field names as the application schemas.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerTagNames(v)
	}
}

func registerTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for inline form errors.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fieldPath(fe)] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

// fieldPath strips the root struct name from the namespace, leaving the
// JSON path of the offending field (e.g. "links.website").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		if kind == reflect.String {
			return "must be at least " + param + " characters"
		}
		if kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map {
			return "must contain at least " + param + " items"
		}
		return "must be at least " + param
	case "max":
		if kind == reflect.String {
			return "must be at most " + param + " characters"
		}
		if kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map {
			return "must contain at most " + param + " items"
		}
		return "must be at most " + param
	case "len":
		return "must have length " + param
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, "' '", "', '")
	case "eqfield":
		if strings.EqualFold(param, "password") {
			return "passwords do not match"
		}
		return "must match " + param
	case "nefield":
		return "must differ from " + param
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be at most " + param
	default:
		if param != "" {
			return "failed validation: " + tag + "=" + param
		}
		return "failed validation: " + tag
	}
}
