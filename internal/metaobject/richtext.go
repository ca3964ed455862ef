package metaobject

// RichText is the store's rich-text document: a root node with nested
// children. Text leaves carry their content under "value" when read back
// from the admin API, but the API only accepts "text" on writes, so Encode
// emits "text" and FirstText reads both.
// Ref: community thread on the limited rich-text field in metaobjects.
type RichText struct {
	Type     string     `json:"type,omitempty"`
	Text     string     `json:"text,omitempty"`
	Value    string     `json:"value,omitempty"`
	Children []RichText `json:"children,omitempty"`
}

// SingleParagraph builds the synthetic one-paragraph document used when a
// plain string is written into a rich-text field.
func SingleParagraph(text string) RichText {
	return RichText{
		Type: "root",
		Children: []RichText{{
			Type: "paragraph",
			Children: []RichText{{
				Type: "text",
				Text: text,
			}},
		}},
	}
}

// FirstText returns the first text run of the document, or "" for an empty
// document. The UI only edits single-paragraph documents, so the first run
// is the whole user-visible value.
// TODO: surface runs beyond the first once the editor grows past one paragraph.
func (r RichText) FirstText() string {
	if r.Text != "" {
		return r.Text
	}
	if r.Value != "" {
		return r.Value
	}
	for _, c := range r.Children {
		if s := c.FirstText(); s != "" {
			return s
		}
	}
	return ""
}
