package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"forme.dev/groups/errs"
)

// Decode reads a schema document in YAML or JSON. Scalar values are type
// expressions; mapping values are nested schemas. Field order follows the
// document.
//
//	name: str
//	tags: list[str]
//	address:
//	  street: str
//	  zip: int
func Decode(data []byte) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrap(errs.KindParse, "GRP-SCHEMA-010", "failed to decode schema document: "+err.Error(), err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return New(), nil
	}
	return decodeMapping(doc.Content[0], "")
}

func decodeMapping(n *yaml.Node, path string) (*Schema, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errs.New(errs.KindParse, "GRP-SCHEMA-011", fmt.Sprintf("schema %s must be a mapping (line %d)", pathName(path), n.Line))
	}
	s := &Schema{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, errs.New(errs.KindParse, "GRP-SCHEMA-011", fmt.Sprintf("field name must be a scalar (line %d)", k.Line))
		}
		name := k.Value
		switch v.Kind {
		case yaml.ScalarNode:
			s.fields = append(s.fields, Field{Name: name, Type: v.Value})
		case yaml.MappingNode:
			sub, err := decodeMapping(v, path+"."+name)
			if err != nil {
				return nil, err
			}
			s.fields = append(s.fields, Field{Name: name, Type: sub})
		default:
			return nil, errs.New(errs.KindParse, "GRP-SCHEMA-011", fmt.Sprintf("field %s must be a type expression or a nested schema (line %d)", pathName(path+"."+name), v.Line))
		}
	}
	return s, nil
}

func pathName(path string) string {
	if path == "" {
		return "root"
	}
	return path[1:]
}
