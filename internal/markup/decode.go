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

package markup

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// maxNodes bounds alias expansion while building the value tree.
const maxNodes = 1 << 20

// DecodeError reports output that is not well-formed markup.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode markup: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeStructured parses payload as a YAML document and returns its root.
// An empty payload decodes to a Null value.
//
// Mapping keys are unique in the result. A repeated key keeps the position
// of its first occurrence and the value of its last. Merge keys ("<<")
// contribute the entries of the referenced mapping, or of each mapping in
// a referenced sequence, that the mapping does not set itself; earlier
// merged mappings take precedence over later ones.
func DecodeStructured(
	payload []byte,
) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return nil, &DecodeError{Err: err}
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Value{Kind: Null}, nil
	}

	d := &decoder{}
	v, err := d.build(doc.Content[0])
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	return v, nil
}

// DecodeScalar trims trailing newlines and whitespace and returns the rest
// of payload unchanged.
func DecodeScalar(
	payload []byte,
) string {
	return strings.TrimRightFunc(string(payload), unicode.IsSpace)
}

type decoder struct {
	nodes int
}

func (d *decoder) build(
	n *yaml.Node,
) (*Value, error) {
	d.nodes++
	if d.nodes > maxNodes {
		return nil, errors.New("document exceeds node limit")
	}

	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unresolved alias", n.Line)
		}
		return d.build(n.Alias)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return &Value{Kind: Null}, nil
		}

		var native any
		if err := n.Decode(&native); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return &Value{Kind: Scalar, Text: n.Value, native: native}, nil
	case yaml.SequenceNode:
		v := &Value{Kind: Sequence, Items: make([]*Value, 0, len(n.Content))}
		for _, child := range n.Content {
			item, err := d.build(child)
			if err != nil {
				return nil, err
			}
			v.Items = append(v.Items, item)
		}

		return v, nil
	case yaml.MappingNode:
		return d.buildMapping(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func (d *decoder) buildMapping(
	n *yaml.Node,
) (*Value, error) {
	v := &Value{Kind: Mapping, Entries: make([]Entry, 0, len(n.Content)/2)}
	index := make(map[string]int, len(n.Content)/2)

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
		}

		val, err := d.build(n.Content[i+1])
		if err != nil {
			return nil, err
		}

		if keyNode.ShortTag() == "!!merge" {
			merged, err := mergeSources(keyNode.Line, val)
			if err != nil {
				return nil, err
			}

			for _, src := range merged {
				for _, e := range src.Entries {
					if _, ok := index[e.Key]; ok {
						continue
					}
					index[e.Key] = len(v.Entries)
					v.Entries = append(v.Entries, e)
				}
			}

			continue
		}

		key := keyNode.Value
		if pos, ok := index[key]; ok {
			v.Entries[pos].Value = val
		} else {
			index[key] = len(v.Entries)
			v.Entries = append(v.Entries, Entry{Key: key, Value: val})
		}
	}

	return v, nil
}

// mergeSources returns the mappings referenced by a merge key value.
func mergeSources(
	line int,
	v *Value,
) ([]*Value, error) {
	switch v.Kind {
	case Mapping:
		return []*Value{v}, nil
	case Sequence:
		for _, item := range v.Items {
			if item.Kind != Mapping {
				return nil, fmt.Errorf("line %d: merge sequence must contain only mappings", line)
			}
		}

		return v.Items, nil
	default:
		return nil, fmt.Errorf("line %d: merge value must be a mapping or sequence of mappings", line)
	}
}
