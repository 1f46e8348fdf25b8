// Package bson provides a BSON codec implementation.
package bson

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/zoobzio/sensitive"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotDocument indicates Encode was given something other than an object.
var ErrNotDocument = errors.New("bson: top-level value must be an object")

// bsonCodec implements sensitive.DocumentCodec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() sensitive.DocumentCodec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}

// Decode parses a BSON document through bson.D so element order survives.
// Only JSON-like element types are accepted (strings, numbers, booleans,
// null, documents, arrays); anything else is an error rather than a lossy
// conversion. Use a Processor over a struct for documents carrying
// ObjectIDs, dates or binary data.
func (c *bsonCodec) Decode(data []byte) (sensitive.Value, error) {
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return sensitive.Null(), err
	}
	return toValue(doc)
}

// Encode renders an object value as a BSON document. Integer literals become
// int32 when they fit, int64 otherwise; other numbers become doubles.
func (c *bsonCodec) Encode(v sensitive.Value) ([]byte, error) {
	if v.Kind() != sensitive.KindObject {
		return nil, ErrNotDocument
	}
	doc, err := fromValue(v)
	if err != nil {
		return nil, err
	}
	return bson.Marshal(doc)
}

func toValue(raw any) (sensitive.Value, error) {
	switch t := raw.(type) {
	case nil:
		return sensitive.Null(), nil
	case string:
		return sensitive.String(t), nil
	case bool:
		return sensitive.Bool(t), nil
	case int32:
		return sensitive.Int(int64(t)), nil
	case int64:
		return sensitive.Int(t), nil
	case float64:
		return sensitive.Float(t), nil
	case primitive.Decimal128:
		return sensitive.Number(t.String()), nil
	case bson.D:
		members := make([]sensitive.Member, 0, len(t))
		for _, e := range t {
			v, err := toValue(e.Value)
			if err != nil {
				return sensitive.Null(), fmt.Errorf("key %q: %w", e.Key, err)
			}
			members = append(members, sensitive.Entry(e.Key, v))
		}
		return sensitive.Object(members...), nil
	case bson.M:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]sensitive.Member, 0, len(t))
		for _, k := range keys {
			v, err := toValue(t[k])
			if err != nil {
				return sensitive.Null(), fmt.Errorf("key %q: %w", k, err)
			}
			members = append(members, sensitive.Entry(k, v))
		}
		return sensitive.Object(members...), nil
	case bson.A:
		items := make([]sensitive.Value, 0, len(t))
		for i, item := range t {
			v, err := toValue(item)
			if err != nil {
				return sensitive.Null(), fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, v)
		}
		return sensitive.Array(items...), nil
	default:
		return sensitive.Null(), fmt.Errorf("unsupported bson type %T", raw)
	}
}

func fromValue(v sensitive.Value) (any, error) {
	switch v.Kind() {
	case sensitive.KindNull:
		return nil, nil
	case sensitive.KindString:
		s, _ := v.AsString()
		return s, nil
	case sensitive.KindBool:
		b, _ := v.AsBool()
		return b, nil
	case sensitive.KindNumber:
		return fromNumber(v.Text())
	case sensitive.KindArray:
		items := make(bson.A, 0, v.Len())
		for _, item := range v.Items() {
			x, err := fromValue(item)
			if err != nil {
				return nil, err
			}
			items = append(items, x)
		}
		return items, nil
	case sensitive.KindObject:
		doc := make(bson.D, 0, v.Len())
		for _, m := range v.Members() {
			x, err := fromValue(m.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", m.Key, err)
			}
			doc = append(doc, bson.E{Key: m.Key, Value: x})
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unknown kind %v", v.Kind())
	}
}

func fromNumber(literal string) (any, error) {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), nil
		}
		return i, nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number literal %q", literal)
	}
	return f, nil
}
