package metaobject

import "fmt"

// FieldError reports a raw value that cannot be decoded per its declared
// type. It indicates store-side data corruption, not user input.
type FieldError struct {
	Key  string
	Type ValueType
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: invalid %s value: %v", e.Key, e.Type, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// MalformedRecordError reports a store response that is structurally
// inconsistent with what the codec expects (missing id, undecodable field).
// Fatal for the request; callers log it and surface a generic failure.
type MalformedRecordError struct {
	Handle string
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed record %q: %s: %v", e.Handle, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed record %q: %s", e.Handle, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
