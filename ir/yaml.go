package ir

import (
	"github.com/goccy/go-yaml"
)

// FromYAML parses a YAML document into a node tree. Handy for loading
// fixtures or configuration-shaped values; the tree is the same model
// that FromJSON produces.
func FromYAML(d []byte) (*Node, error) {
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, err
	}
	return FromGo(v)
}

// ToYAML renders a node tree as a YAML document.
func ToYAML(y *Node) ([]byte, error) {
	return yaml.Marshal(y.ToGo())
}
