// Package msgpack provides a MessagePack codec implementation.
package msgpack

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/sensitive"
)

// msgpackCodec implements sensitive.DocumentCodec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() sensitive.DocumentCodec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// Decode parses a MessagePack document, keeping map order. Binary values
// decode to base64 strings and timestamps to RFC 3339 strings.
func (c *msgpackCodec) Decode(data []byte) (sensitive.Value, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetMapDecoder(decodeOrderedMap)

	raw, err := dec.DecodeInterface()
	if err != nil {
		return sensitive.Null(), err
	}
	return toValue(raw)
}

// Encode renders v as MessagePack. Numbers are written as integers when
// their literal parses as one, otherwise as float64.
func (c *msgpackCodec) Encode(v sensitive.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encodeValue(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeOrderedMap replaces the default map[string]any decoding so member
// order survives.
func decodeOrderedMap(d *msgpack.Decoder) (interface{}, error) {
	n, err := d.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}

	members := make([]sensitive.Member, 0, n)
	for i := 0; i < n; i++ {
		rawKey, err := d.DecodeInterface()
		if err != nil {
			return nil, err
		}
		key, ok := rawKey.(string)
		if !ok {
			key = fmt.Sprint(rawKey)
		}

		raw, err := d.DecodeInterface()
		if err != nil {
			return nil, err
		}
		val, err := toValue(raw)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		members = append(members, sensitive.Entry(key, val))
	}

	return sensitive.Object(members...), nil
}

func toValue(raw any) (sensitive.Value, error) {
	switch t := raw.(type) {
	case []byte:
		return sensitive.String(base64.StdEncoding.EncodeToString(t)), nil
	case time.Time:
		return sensitive.String(t.Format(time.RFC3339Nano)), nil
	case []any:
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
		return sensitive.FromAny(raw)
	}
}

func encodeValue(enc *msgpack.Encoder, v sensitive.Value) error {
	switch v.Kind() {
	case sensitive.KindNull:
		return enc.EncodeNil()
	case sensitive.KindString:
		s, _ := v.AsString()
		return enc.EncodeString(s)
	case sensitive.KindBool:
		b, _ := v.AsBool()
		return enc.EncodeBool(b)
	case sensitive.KindNumber:
		return encodeNumber(enc, v.Text())
	case sensitive.KindArray:
		if err := enc.EncodeArrayLen(v.Len()); err != nil {
			return err
		}
		for _, item := range v.Items() {
			if err := encodeValue(enc, item); err != nil {
				return err
			}
		}
		return nil
	case sensitive.KindObject:
		if err := enc.EncodeMapLen(v.Len()); err != nil {
			return err
		}
		for _, m := range v.Members() {
			if err := enc.EncodeString(m.Key); err != nil {
				return err
			}
			if err := encodeValue(enc, m.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown kind %v", v.Kind())
	}
}

func encodeNumber(enc *msgpack.Encoder, literal string) error {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return enc.EncodeInt(i)
	}
	if u, err := strconv.ParseUint(literal, 10, 64); err == nil {
		return enc.EncodeUint(u)
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return fmt.Errorf("invalid number literal %q", literal)
	}
	return enc.EncodeFloat64(f)
}
