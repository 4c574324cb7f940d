package cli

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-namelist/ast"
)

// marshalYAML renders doc as a YAML mapping of groups to variables. Node
// trees are used instead of maps so group and variable order survive.
func marshalYAML(doc *ast.Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, g := range doc.Groups() {
		group := &yaml.Node{Kind: yaml.MappingNode}
		for name, v := range g.All() {
			node, err := yamlValue(v)
			if err != nil {
				return nil, fmt.Errorf("group %q, variable %q: %w", g.Name, name, err)
			}
			group.Content = append(group.Content, yamlString(name), node)
		}
		root.Content = append(root.Content, yamlString(g.Name), group)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yamlFloat(f float64) *yaml.Node {
	var s string
	switch {
	case math.IsNaN(f):
		s = ".nan"
	case math.IsInf(f, 1):
		s = ".inf"
	case math.IsInf(f, -1):
		s = "-.inf"
	default:
		s = strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
}

func yamlValue(v ast.Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case ast.Integer:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(val), 10)}, nil
	case ast.Real:
		return yamlFloat(float64(val)), nil
	case ast.Boolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(val))}, nil
	case ast.Text:
		return yamlString(string(val)), nil
	case ast.Complex:
		return &yaml.Node{
			Kind:    yaml.MappingNode,
			Style:   yaml.FlowStyle,
			Content: []*yaml.Node{yamlString("re"), yamlFloat(val.Re), yamlString("im"), yamlFloat(val.Im)},
		}, nil
	case ast.List:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, elem := range val {
			node, err := yamlValue(elem)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, node)
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
