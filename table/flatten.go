package table

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Flatten turns nested objects into dotted column names, e.g.
// contact.address.city. Arrays and scalars are kept as they are. Empty
// objects produce no column.
func Flatten(record map[string]any) Row {
	row := Row{}
	flattenMap("", record, row, nil)
	return row
}

// flattenMap walks m in sorted key order, recording new columns in keys.
func flattenMap(prefix string, m map[string]any, row Row, keys *[]string) {
	for _, k := range sortedKeys(m) {
		name := join(prefix, k)
		if nested, ok := m[k].(map[string]any); ok {
			flattenMap(name, nested, row, keys)
			continue
		}
		row[name] = m[k]
		if keys != nil {
			*keys = append(*keys, name)
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// FromRecords flattens any JSON encodable value, a slice of records or a
// single record, into a table. Columns follow the field order of the
// encoded records.
func FromRecords(v any) (*Table, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return FromJSON(data)
}

// FromJSON flattens a JSON array of objects, or a single object, keeping the
// key order of the document.
func FromJSON(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeOrdered(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	t := New()
	switch v := v.(type) {
	case nil:
	case *object:
		row, keys := v.flatten()
		t.Append(row, keys...)
	case []any:
		for i, elem := range v {
			obj, ok := elem.(*object)
			if !ok {
				return nil, fmt.Errorf("record %d is not an object", i)
			}
			row, keys := obj.flatten()
			t.Append(row, keys...)
		}
	default:
		return nil, errors.New("records must be an object or an array of objects")
	}
	return t, nil
}

// object is a JSON object that remembers its key order.
type object struct {
	keys   []string
	values map[string]any
}

func (o *object) flatten() (Row, []string) {
	row := Row{}
	keys := make([]string, 0, len(o.keys))
	o.flattenInto("", row, &keys)
	return row, keys
}

func (o *object) flattenInto(prefix string, row Row, keys *[]string) {
	for _, k := range o.keys {
		name := join(prefix, k)
		if nested, ok := o.values[k].(*object); ok {
			nested.flattenInto(name, row, keys)
			continue
		}
		row[name] = plain(o.values[k])
		*keys = append(*keys, name)
	}
}

// plain converts ordered objects nested in arrays back to maps.
func plain(v any) any {
	switch v := v.(type) {
	case *object:
		m := make(map[string]any, len(v.values))
		for k, val := range v.values {
			m[k] = plain(val)
		}
		return m
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = plain(elem)
		}
		return out
	default:
		return v
	}
}

func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := &object{values: map[string]any{}}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			val, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			if _, dup := obj.values[key]; !dup {
				obj.keys = append(obj.keys, key)
			}
			obj.values[key] = val
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}
