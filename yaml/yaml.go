// Package yaml provides a YAML codec implementation.
package yaml

import (
	"github.com/zoobzio/sensitive"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements sensitive.DocumentCodec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() sensitive.DocumentCodec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Decode parses a YAML document, keeping mapping order. An empty document
// decodes to null.
func (c *yamlCodec) Decode(data []byte) (sensitive.Value, error) {
	var v sensitive.Value
	if err := yaml.Unmarshal(data, &v); err != nil {
		return sensitive.Null(), err
	}
	return v, nil
}

// Encode renders v as YAML.
func (c *yamlCodec) Encode(v sensitive.Value) ([]byte, error) {
	return yaml.Marshal(v)
}
