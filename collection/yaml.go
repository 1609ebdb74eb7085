package collection

import (
	"fmt"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var (
	_ yaml.Marshaler   = (*Collection)(nil)
	_ yaml.Unmarshaler = (*Collection)(nil)
)

// MarshalYAML emits the entries as a mapping node in ascending key order.
// yaml.v3 keeps mapping order only through the node API, so the entries are
// built as explicit key/value node pairs.
func (c *Collection) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	c.tree.ascend(nil, func(e *Entry) bool {
		key := &yaml.Node{}
		key.SetString(cast.ToString(e.Key))
		val := &yaml.Node{}
		if err = val.Encode(e.Value); err != nil {
			return false
		}
		node.Content = append(node.Content, key, val)
		return true
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// UnmarshalYAML replaces the entries with the decoded mapping, staged and
// validated against capacity first like the JSON path.
func (c *Collection) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("yaml: expected mapping node, got kind %d", value.Kind)
	}
	entries := make([]Entry, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		var val interface{}
		if err := value.Content[i+1].Decode(&val); err != nil {
			return err
		}
		entries = append(entries, Entry{Key: coerceScalar(key), Value: val})
	}
	return c.replaceEntries(entries)
}
