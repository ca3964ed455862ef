package metaobject

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Codec converts between the store's raw key/type/value field records and
// native values. The rich-text key allowlist is fixed at construction; keys
// on it are re-encoded as synthetic rich-text documents on the way out.
type Codec struct {
	richTextKeys map[string]bool
}

// RichTextKeys is the default allowlist of profile fields persisted as
// rich-text documents in the store.
var RichTextKeys = []string{
	"description",
	"additional_services",
	"skills_and_technologies_additional_notes",
	"portfolio_sites",
	"other_links",
}

func NewCodec(richTextKeys []string) *Codec {
	m := make(map[string]bool, len(richTextKeys))
	for _, k := range richTextKeys {
		m[k] = true
	}
	return &Codec{richTextKeys: m}
}

// Decode parses one raw field per its declared type. A nil or empty raw
// value decodes to a NULL field regardless of the declared type.
func (c *Codec) Decode(f RawField) (DecodedField, error) {
	if f.Value == nil || *f.Value == "" {
		return DecodedField{Key: f.Key, Type: TypeNull}, nil
	}
	raw := *f.Value
	typ := NormalizeType(string(f.Type))

	fail := func(err error) (DecodedField, error) {
		return DecodedField{}, &FieldError{Key: f.Key, Type: typ, Err: err}
	}

	switch typ {
	case TypeBoolean:
		switch raw {
		case "true":
			return DecodedField{Key: f.Key, Type: typ, Value: true}, nil
		case "false":
			return DecodedField{Key: f.Key, Type: typ, Value: false}, nil
		}
		return fail(fmt.Errorf("not a boolean literal: %q", raw))

	case TypeDateTime:
		t, err := parseTimestamp(raw)
		if err != nil {
			return fail(err)
		}
		return DecodedField{Key: f.Key, Type: typ, Value: t}, nil

	case TypeJSON:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return fail(err)
		}
		return DecodedField{Key: f.Key, Type: typ, Value: v}, nil

	case TypeNumberDecimal:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fail(err)
		}
		return DecodedField{Key: f.Key, Type: typ, Value: v}, nil

	case TypeNumberInteger:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fail(err)
		}
		return DecodedField{Key: f.Key, Type: typ, Value: v}, nil

	case TypeSingleLineText, TypeURL:
		// Format validation is the schema layer's job.
		return DecodedField{Key: f.Key, Type: typ, Value: raw}, nil

	case TypeListText:
		var vs []string
		if err := json.Unmarshal([]byte(raw), &vs); err != nil {
			return fail(err)
		}
		return DecodedField{Key: f.Key, Type: typ, Value: vs}, nil

	case TypeRichText:
		var doc RichText
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return fail(err)
		}
		return DecodedField{Key: f.Key, Type: typ, Value: doc}, nil

	case TypeReference:
		ref := ReferenceValue{ID: raw}
		if f.Reference != nil {
			fields, err := c.flattenFields(f.Reference.Fields)
			if err != nil {
				return fail(err)
			}
			ref.ID = f.Reference.ID
			ref.Fields = fields
		}
		return DecodedField{Key: f.Key, Type: typ, Value: ref}, nil

	case TypeListReference:
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return fail(err)
		}
		lr := ListReferenceValue{IDs: ids}
		for _, rec := range f.References {
			fields, err := c.flattenFields(rec.Fields)
			if err != nil {
				return fail(err)
			}
			lr.References = append(lr.References, ReferenceValue{ID: rec.ID, Fields: fields})
		}
		return DecodedField{Key: f.Key, Type: typ, Value: lr}, nil
	}

	return fail(errors.New("unknown declared type"))
}

// Flatten decodes every field of a record into a plain key→value map. Rich
// text collapses to its first text run, references to ReferenceValue /
// ListReferenceValue, NULL fields to absent keys. Duplicate keys are
// last-write-wins; the store contract says they do not occur.
func (c *Codec) Flatten(rec *Record) (map[string]any, error) {
	if rec == nil || rec.ID == "" {
		return nil, &MalformedRecordError{Reason: "record has no id"}
	}
	m, err := c.flattenFields(rec.Fields)
	if err != nil {
		return nil, &MalformedRecordError{Handle: rec.Handle, Reason: "undecodable field", Err: err}
	}
	m["id"] = rec.ID
	return m, nil
}

func (c *Codec) flattenFields(fields []RawField) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		d, err := c.Decode(f)
		if err != nil {
			return nil, err
		}
		if d.Type == TypeNull {
			continue
		}
		if doc, ok := d.Value.(RichText); ok {
			out[d.Key] = doc.FirstText()
			continue
		}
		out[d.Key] = d.Value
	}
	return out, nil
}

// Encode re-encodes one field for the store's partial-update mutation.
// Allow-listed rich-text keys wrap plain strings into a synthetic
// single-paragraph document before stringification; other non-string values
// are JSON-stringified; strings pass through; nil encodes to the empty
// string, which the store reads as an explicit clear.
func (c *Codec) Encode(key string, value any) RawField {
	if value == nil {
		return RawField{Key: key, Value: strptr("")}
	}
	if s, ok := value.(string); ok {
		if c.richTextKeys[key] && s != "" {
			b, _ := json.Marshal(SingleParagraph(s))
			return RawField{Key: key, Value: strptr(string(b))}
		}
		return RawField{Key: key, Value: strptr(s)}
	}
	b, err := json.Marshal(value)
	if err != nil {
		return RawField{Key: key, Value: strptr("")}
	}
	return RawField{Key: key, Value: strptr(string(b))}
}

func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	// The store emits date-only values for date metafields.
	return time.Parse("2006-01-02", raw)
}
