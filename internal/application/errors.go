package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCredentials is returned for every failed login, whether the
// email is unknown, the stored record is unusable, or the password is
// wrong. One error for all three so responses never reveal which.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError carries field-path → message details for user input that
// failed schema validation. Recoverable: handlers render it inline, never
// as a 5xx.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Details[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation extracts a *ValidationError from err, if present.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
