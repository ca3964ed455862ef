package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by lookups for handles the store has no record of.
var ErrNotFound = errors.New("record not found")

// UserError is one per-field rejection returned by a store mutation.
type UserError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// UserErrors is the set of per-field rejections from a store write. It is a
// user-input class failure: callers surface it as field-keyed form errors
// rather than a transport fault.
type UserErrors []UserError

func (e UserErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ue := range e {
		if ue.Field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", ue.Field, ue.Message))
			continue
		}
		parts = append(parts, ue.Message)
	}
	return "store rejected write: " + strings.Join(parts, "; ")
}

// Details maps the rejections by field path for inline rendering.
func (e UserErrors) Details() map[string]string {
	out := make(map[string]string, len(e))
	for _, ue := range e {
		field := ue.Field
		if field == "" {
			field = "form"
		}
		if _, ok := out[field]; !ok {
			out[field] = ue.Message
		}
	}
	return out
}
