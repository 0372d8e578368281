package model

import (
	"encoding/base64"
	"fmt"

	"gopkg.in/yaml.v3"

	"forme.dev/groups/shape"
)

// DecodeDocument reads a YAML or JSON document into native data: scalars
// stay scalars, sequences become []any and mappings become shape.Map in
// document order. Values tagged !!binary decode to []byte.
func DecodeDocument(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewError(ErrInvalidRequest, "failed to decode document: "+err.Error())
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, NewError(ErrInvalidRequest, "empty document")
	}
	return fromNode(doc.Content[0])
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(shape.Map, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := fromNode(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out = append(out, shape.Pair{Key: k, Value: v})
		}
		return out, nil
	case yaml.ScalarNode:
		if n.Tag == "!!binary" {
			b, err := base64.StdEncoding.DecodeString(n.Value)
			if err != nil {
				return nil, NewError(ErrInvalidRequest, fmt.Sprintf("line %d: invalid !!binary value", n.Line))
			}
			return b, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, NewError(ErrInvalidRequest, fmt.Sprintf("line %d: %v", n.Line, err))
		}
		return v, nil
	}
	return nil, NewError(ErrInvalidRequest, fmt.Sprintf("line %d: unsupported node", n.Line))
}
