// Package json provides a JSON codec implementation.
package json

import (
	"encoding/json"

	"github.com/zoobzio/sensitive"
)

// jsonCodec implements sensitive.DocumentCodec for JSON.
type jsonCodec struct{}

// New returns a JSON codec.
func New() sensitive.DocumentCodec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Decode parses a JSON document, keeping member order and number literals.
func (c *jsonCodec) Decode(data []byte) (sensitive.Value, error) {
	return sensitive.ParseJSON(data)
}

// Encode renders v as compact JSON.
func (c *jsonCodec) Encode(v sensitive.Value) ([]byte, error) {
	return v.MarshalJSON()
}
