package metabase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Iterates over the entries of a JSON object in the order in which they appear in the document.
// Metabase relies on key order in several places (template tags, custom expressions), which is lost when decoding into
// a Go map.
func DecodeObjectInOrder(data []byte, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok == nil {
		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("expected a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", keyTok)
		}

		var value json.RawMessage
		err = dec.Decode(&value)
		if err != nil {
			return err
		}

		err = fn(key, value)
		if err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}

// The template tags of a native query, keyed by name, remembering the order in which they were declared.
type TemplateTags struct {
	names []string
	tags  map[string]TemplateTag
}

// Makes template tags from a list, in order.
func NewTemplateTags(tags ...TemplateTag) TemplateTags {
	tt := TemplateTags{tags: make(map[string]TemplateTag, len(tags))}
	for _, t := range tags {
		tt.Add(t)
	}
	return tt
}

// Adds or replaces a template tag. Replacing a tag keeps its original position.
func (tt *TemplateTags) Add(tag TemplateTag) {
	if tt.tags == nil {
		tt.tags = make(map[string]TemplateTag)
	}

	if _, exists := tt.tags[tag.Name]; !exists {
		tt.names = append(tt.names, tag.Name)
	}

	tt.tags[tag.Name] = tag
}

// Returns the template tag with the given name.
func (tt TemplateTags) Get(name string) (TemplateTag, bool) {
	t, ok := tt.tags[name]
	return t, ok
}

// Returns all template tags, in declaration order.
func (tt TemplateTags) List() []TemplateTag {
	list := make([]TemplateTag, 0, len(tt.names))
	for _, n := range tt.names {
		list = append(list, tt.tags[n])
	}
	return list
}

func (tt TemplateTags) Len() int {
	return len(tt.names)
}

func (tt *TemplateTags) UnmarshalJSON(data []byte) error {
	*tt = TemplateTags{}

	return DecodeObjectInOrder(data, func(key string, value json.RawMessage) error {
		var tag TemplateTag
		err := json.Unmarshal(value, &tag)
		if err != nil {
			return fmt.Errorf("failed to parse template tag %q: %w", key, err)
		}

		// The key is authoritative, the `name` attribute is sometimes missing.
		tag.Name = key
		tt.Add(tag)

		return nil
	})
}

func (tt TemplateTags) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')

	for i, n := range tt.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(tt.tags[n])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
