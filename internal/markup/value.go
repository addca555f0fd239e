// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package markup decodes helper output into a key-ordered value tree.
package markup

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	// Null is an empty document or an explicit null.
	Null Kind = iota
	// Scalar is a single string, number or boolean.
	Scalar
	// Sequence is an ordered list of values.
	Sequence
	// Mapping is a key-ordered set of entries.
	Mapping
)

// Value is a decoded markup node. Mapping keys keep document order.
type Value struct {
	Kind Kind
	// Text is the scalar text exactly as written (Scalar only).
	Text string
	// Items holds sequence elements (Sequence only).
	Items []*Value
	// Entries holds mapping entries in document order (Mapping only).
	Entries []Entry

	native any
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *Value
}

// Lookup returns the value stored under key in a mapping.
func (v *Value) Lookup(
	key string,
) (*Value, bool) {
	if v == nil || v.Kind != Mapping {
		return nil, false
	}

	for _, e := range v.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return nil, false
}

// Keys returns the mapping keys in document order.
func (v *Value) Keys() []string {
	if v == nil || v.Kind != Mapping {
		return nil
	}

	keys := make([]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		keys = append(keys, e.Key)
	}

	return keys
}

// IsEmpty reports whether the value is null or an empty collection.
func (v *Value) IsEmpty() bool {
	if v == nil {
		return true
	}

	switch v.Kind {
	case Null:
		return true
	case Sequence:
		return len(v.Items) == 0
	case Mapping:
		return len(v.Entries) == 0
	default:
		return false
	}
}

// String returns the scalar text, or "" for anything else.
func (v *Value) String() string {
	if v == nil || v.Kind != Scalar {
		return ""
	}

	return v.Text
}

// StringSlice converts a sequence of scalars. Null converts to an empty
// slice.
func (v *Value) StringSlice() ([]string, error) {
	if v == nil || v.Kind == Null {
		return []string{}, nil
	}

	if v.Kind != Sequence {
		return nil, fmt.Errorf("expected sequence, got %s", v.Kind)
	}

	out := make([]string, 0, len(v.Items))
	for i, item := range v.Items {
		if item.Kind != Scalar {
			return nil, fmt.Errorf("item %d: expected scalar, got %s", i, item.Kind)
		}
		out = append(out, item.Text)
	}

	return out, nil
}

// StringListMap converts a mapping of key to sequence of scalars.
func (v *Value) StringListMap() (map[string][]string, error) {
	if v == nil || v.Kind == Null {
		return map[string][]string{}, nil
	}

	if v.Kind != Mapping {
		return nil, fmt.Errorf("expected mapping, got %s", v.Kind)
	}

	out := make(map[string][]string, len(v.Entries))
	for _, e := range v.Entries {
		items, err := e.Value.StringSlice()
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", e.Key, err)
		}
		out[e.Key] = items
	}

	return out, nil
}

// Interface converts the value into plain Go types: nil, scalars as decoded
// by YAML (string, int, float64, bool), []any and map[string]any.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case Scalar:
		return v.native
	case Sequence:
		out := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			out = append(out, item.Interface())
		}
		return out
	case Mapping:
		out := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			out[e.Key] = e.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes the value as JSON, preserving mapping key order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v *Value) writeJSON(
	buf *bytes.Buffer,
) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}

	switch v.Kind {
	case Scalar:
		b, err := json.Marshal(v.native)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Sequence:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Mapping:
		buf.WriteByte('{')
		for i, e := range v.Entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(e.Key)
			buf.Write(key)
			buf.WriteByte(':')
			if err := e.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}

	return nil
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "unknown"
	}
}
