package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is the structured payload type used for audit details and record
// snapshots. Maps keep insertion order so serialization is deterministic.
type Value struct {
	Kind   ValueKind
	Str    string
	Num    float64
	Bool   bool
	List   []Value
	Fields []Field
}

// Field is one ordered entry of a map-kind Value.
type Field struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value {
	return Value{Kind: KindNull}
}

// String wraps a string.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Number wraps a number.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// Boolean wraps a bool.
func Boolean(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// ListOf builds a list value.
func ListOf(items ...Value) Value {
	return Value{Kind: KindList, List: items}
}

// NewMap builds an ordered map value.
func NewMap(fields ...Field) Value {
	return Value{Kind: KindMap, Fields: fields}
}

// F builds one map field.
func F(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// Get returns the value stored under key in a map-kind value.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindMap {
		return Value{}, false
	}
	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the map keys in insertion order; nil for non-map values.
func (v Value) Keys() []string {
	if v.Kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// JSON renders the canonical serialized form. Map keys appear in insertion
// order, so the same value always serializes to the same bytes.
func (v Value) JSON() string {
	var b strings.Builder
	v.writeJSON(&b)
	return b.String()
}

// MarshalJSON implements json.Marshaler using the canonical form.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.JSON()), nil
}

// Equal compares two values by their serialized forms.
func (v Value) Equal(other Value) bool {
	return v.JSON() == other.JSON()
}

func (v Value) writeJSON(b *strings.Builder) {
	switch v.Kind {
	case KindNull:
		b.WriteString("null")
	case KindString:
		data, _ := json.Marshal(v.Str)
		b.Write(data)
	case KindNumber:
		b.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
	case KindBool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case KindList:
		b.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				b.WriteByte(',')
			}
			item.writeJSON(b)
		}
		b.WriteByte(']')
	case KindMap:
		b.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			key, _ := json.Marshal(f.Key)
			b.Write(key)
			b.WriteByte(':')
			f.Value.writeJSON(b)
		}
		b.WriteByte('}')
	}
}

// ParseValue decodes JSON into a Value, preserving object key order.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	val, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	return val, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var fields []Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key token %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				fields = append(fields, Field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{Kind: KindMap, Fields: fields}, nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{Kind: KindList, List: items}, nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return String(t), nil
	case json.Number:
		num, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(num), nil
	case bool:
		return Boolean(t), nil
	case nil:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}
