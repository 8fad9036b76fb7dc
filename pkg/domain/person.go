package domain

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Person is a person record as returned by the service. The client does not
// assume a schema; the helpers below read the few fields it chains calls on.
type Person map[string]any

// ID returns the record's person identifier, or "" when absent.
func (p Person) ID() string {
	return p.String("id")
}

// Name returns the record's display name.
func (p Person) Name() string {
	return p.String("name")
}

// DOB returns the record's date of birth as the service formats it.
func (p Person) DOB() string {
	return p.String("dob")
}

// String renders the value stored under key as text. Numbers keep their
// literal form so identifiers never pass through float64.
func (p Person) String(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (p *Person) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := decodeNumbers(data, &m); err != nil {
		return err
	}
	*p = m
	return nil
}

// People is a list of person records. A single JSON object decodes as a
// one-element list so every relation endpoint shares the same shape.
type People []Person

func (ps *People) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*ps = nil
		return nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		var p Person
		if err := p.UnmarshalJSON(trimmed); err != nil {
			return err
		}
		*ps = People{p}
		return nil
	}

	var raw []map[string]any
	if err := decodeNumbers(trimmed, &raw); err != nil {
		return err
	}
	out := make(People, len(raw))
	for i, m := range raw {
		out[i] = m
	}
	*ps = out
	return nil
}

// IDs returns the identifiers of all records, in order.
func (ps People) IDs() []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID()
	}
	return ids
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
