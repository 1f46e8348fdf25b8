package sensitive

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes v as a yaml.Node, keeping member order.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.yamlNode(), nil
}

// UnmarshalYAML decodes any YAML node into a Value. Mapping keys are taken
// as written; scalars resolve by their YAML tag. Alias expansion is bounded
// the way yaml.v3 bounds its own decoding, failing with ErrYAMLAliasing.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var d yamlDecoder
	parsed, err := d.decode(node)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindString:
		return yamlString(v.text)
	case KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.text}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.boolean)}
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.members {
			node.Content = append(node.Content,
				yamlString(m.Key),
				m.Value.yamlNode(),
			)
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// yamlString renders text as a string scalar. Line breaks force double
// quotes; block scalars drop a value made only of newlines.
func yamlString(text string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: text}
	if strings.ContainsAny(text, "\n\r") {
		node.Style = yaml.DoubleQuotedStyle
	}
	return node
}

const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

// allowedAliasRatio mirrors yaml.v3: small documents may be almost all
// aliases, large ones may not.
func allowedAliasRatio(decoded int) float64 {
	switch {
	case decoded <= aliasRatioRangeLow:
		return 0.99
	case decoded >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decoded-aliasRatioRangeLow)/aliasRatioRange)
	}
}

// yamlDecoder counts visited nodes, and the nodes reached through an
// alias, for one document.
type yamlDecoder struct {
	decoded    int
	aliased    int
	aliasDepth int
}

func (d *yamlDecoder) decode(node *yaml.Node) (Value, error) {
	d.decoded++
	if d.aliasDepth > 0 {
		d.aliased++
	}
	if d.aliased > 100 && d.decoded > 1000 && float64(d.aliased)/float64(d.decoded) > allowedAliasRatio(d.decoded) {
		return Null(), fmt.Errorf("line %d: %w", node.Line, ErrYAMLAliasing)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return d.decode(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return Null(), fmt.Errorf("line %d: unresolved alias", node.Line)
		}
		d.aliasDepth++
		defer func() { d.aliasDepth-- }()
		return d.decode(node.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := d.decode(child)
			if err != nil {
				return Null(), err
			}
			items = append(items, item)
		}
		return arrayOf(items), nil
	case yaml.MappingNode:
		if len(node.Content)%2 != 0 {
			return Null(), fmt.Errorf("line %d: odd mapping content", node.Line)
		}
		members := make([]Member, 0, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind == yaml.AliasNode && key.Alias != nil {
				key = key.Alias
			}
			val, err := d.decode(node.Content[i+1])
			if err != nil {
				return Null(), err
			}
			members = append(members, Entry(key.Value, val))
		}
		return objectOf(members), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	default:
		return Null(), fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

func fromYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Null(), fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		return Number(node.Value), nil
	default:
		return String(node.Value), nil
	}
}
