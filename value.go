package sensitive

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a node of a structured document: null, string, number, bool,
// array or object. Objects keep their members in insertion order.
//
// Numbers keep their literal text so that round-tripping a document does not
// change precision or formatting.
//
// Values are immutable: constructors copy their inputs and accessors return
// copies, so a Value can be shared freely.
type Value struct {
	kind    Kind
	text    string // string contents or number literal
	boolean bool
	items   []Value
	members []Member
}

// Member is a key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the null value. The zero Value is also null.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a number value with the given literal text, e.g. "42" or "1.5e3".
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

// Int returns a number value for i.
func Int(i int64) Value { return Number(strconv.FormatInt(i, 10)) }

// Float returns a number value for f in its shortest exact form.
func Float(f float64) Value { return Number(strconv.FormatFloat(f, 'g', -1, 64)) }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Array returns an array of items.
func Array(items ...Value) Value {
	return arrayOf(append([]Value(nil), items...))
}

// Object returns an object with members in the given order.
func Object(members ...Member) Value {
	return objectOf(append([]Member(nil), members...))
}

// Entry is shorthand for Member{Key: key, Value: v}.
func Entry(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// arrayOf and objectOf take ownership of the slice.
func arrayOf(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

func objectOf(members []Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{kind: KindObject, members: members}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the contents of a string value.
func (v Value) AsString() (string, bool) {
	return v.text, v.kind == KindString
}

// AsNumber returns the literal text of a number value.
func (v Value) AsNumber() (string, bool) {
	return v.text, v.kind == KindNumber
}

// AsBool returns the contents of a bool value.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// Text returns the canonical text of a scalar: the string itself, the number
// literal, or "true"/"false". Null, arrays and objects return "".
func (v Value) Text() string {
	switch v.kind {
	case KindString, KindNumber:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.boolean)
	default:
		return ""
	}
}

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Items returns a copy of the array items. Nil for non-arrays.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Index returns the i-th array item, or null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Null()
	}
	return v.items[i]
}

// Members returns a copy of the object members. Nil for non-objects.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return append([]Member(nil), v.members...)
}

// Get returns the first member named key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Null(), false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Null(), false
}

// Equal reports whether v and other are deeply equal, including member order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString, KindNumber:
		return v.text == other.text
	case KindBool:
		return v.boolean == other.boolean
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != other.members[i].Key || !v.members[i].Value.Equal(other.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// FromAny converts a generic Go value into a Value.
//
// Supported inputs are nil, Value, string, bool, json.Number, the integer and
// float types, []any, []Value, []Member and map[string]any. Go maps have no
// order, so their keys are sorted.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(t, 10)), nil
	case float32:
		return Number(strconv.FormatFloat(float64(t), 'g', -1, 32)), nil
	case float64:
		return Float(t), nil
	case []Value:
		return Array(t...), nil
	case []Member:
		return Object(t...), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, item := range t {
			converted, err := FromAny(item)
			if err != nil {
				return Null(), fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, converted)
		}
		return arrayOf(items), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(t))
		for _, k := range keys {
			converted, err := FromAny(t[k])
			if err != nil {
				return Null(), fmt.Errorf("key %q: %w", k, err)
			}
			members = append(members, Entry(k, converted))
		}
		return objectOf(members), nil
	default:
		return Null(), fmt.Errorf("unsupported type %T", x)
	}
}

// ToAny converts v into generic Go values: nil, string, json.Number, bool,
// []any and map[string]any. Member order is lost.
func (v Value) ToAny() any {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		return json.Number(v.text)
	case KindBool:
		return v.boolean
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.ToAny()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.ToAny()
		}
		return out
	default:
		return nil
	}
}
