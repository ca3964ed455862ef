package metaobject

import "strings"

// ValueType is the declared type tag of a metaobject field as reported by the
// admin API.
type ValueType string

const (
	TypeBoolean        ValueType = "boolean"
	TypeDateTime       ValueType = "date_time"
	TypeJSON           ValueType = "json"
	TypeNumberDecimal  ValueType = "number_decimal"
	TypeNumberInteger  ValueType = "number_integer"
	TypeSingleLineText ValueType = "single_line_text"
	TypeNull           ValueType = "null"
	TypeURL            ValueType = "url"
	TypeListText       ValueType = "list_text"
	TypeRichText       ValueType = "rich_text"
	TypeReference      ValueType = "reference"
	TypeListReference  ValueType = "list_reference"
)

// NormalizeType maps the admin API's type tags onto the canonical ValueType
// set. The API reports scalar types with a "_field" suffix ("rich_text_field",
// "single_line_text_field") and list types as "list.<type>".
func NormalizeType(raw string) ValueType {
	s := strings.TrimSuffix(raw, "_field")
	switch s {
	case "list.single_line_text", "list.text":
		return TypeListText
	case "list.metaobject_reference", "list.mixed_reference":
		return TypeListReference
	case "metaobject_reference", "mixed_reference":
		return TypeReference
	}
	return ValueType(s)
}

// RawField is one undecoded key/type/value record as returned by the store.
// Value is nil when the store holds no value for the key. Reference and
// References carry the nested records the store resolved for reference-typed
// fields; for list_reference their order follows the store's response, which
// is not guaranteed to align with the id list in Value.
type RawField struct {
	Key        string    `json:"key"`
	Type       ValueType `json:"type"`
	Value      *string   `json:"value"`
	Reference  *Record   `json:"reference,omitempty"`
	References []Record  `json:"references,omitempty"`
}

// Record is a metaobject as fetched from the store: an id, a URL handle, and
// a flat set of raw fields. Immutable once fetched.
type Record struct {
	ID     string     `json:"id"`
	Handle string     `json:"handle,omitempty"`
	Fields []RawField `json:"fields"`
}

// DecodedField pairs a field key with its decoded native value. The invariant
// is that Type always matches the dynamic type of Value, and Value is nil iff
// Type is TypeNull.
type DecodedField struct {
	Key   string
	Type  ValueType
	Value any
}

// ReferenceValue is the decoded form of a reference-typed field: the opaque
// id plus the referenced record's own fields flattened by key.
type ReferenceValue struct {
	ID     string
	Fields map[string]any
}

// ListReferenceValue is the decoded form of a list_reference field. IDs come
// from the field's own JSON value; References from the nested records, in
// store order.
type ListReferenceValue struct {
	IDs        []string
	References []ReferenceValue
}

func strptr(s string) *string { return &s }
