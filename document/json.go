// Package document holds the block document model: lenient JSON decoding that
// keeps object key order, normalization of loosely shaped producer output into
// typed blocks and runs, and resolution of the document root.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Object is a JSON object which remembers the order its keys were first seen
// in. Style declarations are emitted in this order, so it matters for the
// cascade.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// ObjectOf builds object from key/value pairs, odd trailing key is ignored.
func ObjectOf(kv ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			o.Set(k, kv[i+1])
		}
	}
	return o
}

// Len returns number of keys, nil object is empty.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// Get returns value for the key. Safe on nil object.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present (even with null value).
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores value. Existing key keeps its original position, same as
// repeated keys in JSON.parse.
func (o *Object) Set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Merge returns new object with values of other laid on top of o: keys
// already present keep their position, new keys are appended.
func (o *Object) Merge(other *Object) *Object {
	res := NewObject()
	if o != nil {
		res.keys = slices.Clone(o.keys)
		maps.Copy(res.values, o.values)
	}
	if other != nil {
		for _, k := range other.keys {
			res.Set(k, other.values[k])
		}
	}
	return res
}

// MarshalJSON writes object keeping key order and without HTML escaping.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, o.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	if obj, ok := v.(*Object); ok {
		data, err := obj.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
	if arr, ok := v.([]any); ok {
		buf.WriteByte('[')
		for i, item := range arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// Decode reads single JSON value. Objects become *Object, arrays []any,
// numbers json.Number; strings, booleans and null map to Go natives.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("unable to decode document: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unable to decode document: unexpected data after top-level value")
	}
	return v, nil
}

// DecodeString is a convenience wrapper around Decode.
func DecodeString(s string) (any, error) {
	return Decode(strings.NewReader(s))
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", kt)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := make([]any, 0)
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		return t, nil
	}
}

// FromNative converts values produced by encoding/json or built by hand
// (map[string]any, []any, float64, int...) into the document representation.
// Map keys are sorted since Go maps carry no order.
func FromNative(v any) any {
	switch t := v.(type) {
	case *Object, json.Number, string, bool, nil:
		return t
	case map[string]any:
		obj := NewObject()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			obj.Set(k, FromNative(t[k]))
		}
		return obj
	case []any:
		res := make([]any, len(t))
		for i := range t {
			res[i] = FromNative(t[i])
		}
		return res
	case []map[string]any:
		res := make([]any, len(t))
		for i := range t {
			res[i] = FromNative(t[i])
		}
		return res
	case []string:
		res := make([]any, len(t))
		for i := range t {
			res[i] = t[i]
		}
		return res
	}
	if f, ok := Number(v); ok {
		return json.Number(FormatNumber(f))
	}
	return v
}
