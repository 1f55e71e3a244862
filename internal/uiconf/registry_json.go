package uiconf

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// LoadRegistryDescription builds a validate-only registry from a JSON
// description, used by the CLI to lint override documents without a running
// GUI. The shape mirrors what the GUI registers at startup:
//
//	{
//	  "txt2img": [
//	    {
//	      "name": "Sampling method",
//	      "aliases": ["Sampler"],
//	      "properties": {
//	        "value":   {"type": "string"},
//	        "visible": {"type": "bool"},
//	        "maximum": {"type": "float", "minimum": 1, "maximum": 30}
//	      }
//	    }
//	  ]
//	}
//
// Descriptors built here have no setter; applying against them validates
// without mutating anything.
func LoadRegistryDescription(data []byte) (*Registry, error) {
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("registry description: top-level value must be an object")
	}

	reg := NewRegistry()
	var parseErr error

	doc.ForEach(func(tab, controls gjson.Result) bool {
		if !controls.IsArray() {
			parseErr = fmt.Errorf("registry description: tab %q must hold an array of controls", tab.String())
			return false
		}
		controls.ForEach(func(_, control gjson.Result) bool {
			desc, err := parseDescriptor(control)
			if err != nil {
				parseErr = fmt.Errorf("registry description: tab %q: %w", tab.String(), err)
				return false
			}
			reg.Register(tab.String(), desc)
			return true
		})
		return parseErr == nil
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return reg, nil
}

func parseDescriptor(control gjson.Result) (*Descriptor, error) {
	name := control.Get("name").String()
	if name == "" {
		return nil, fmt.Errorf("control has no name")
	}

	desc := &Descriptor{
		CanonicalName: name,
		Properties:    make(map[string]PropertySpec),
	}
	control.Get("aliases").ForEach(func(_, alias gjson.Result) bool {
		if alias.String() != "" {
			desc.Aliases = append(desc.Aliases, alias.String())
		}
		return true
	})

	var propErr error
	control.Get("properties").ForEach(func(prop, spec gjson.Result) bool {
		parsed, err := parsePropertySpec(spec)
		if err != nil {
			propErr = fmt.Errorf("control %q property %q: %w", name, prop.String(), err)
			return false
		}
		desc.Properties[strings.ToLower(prop.String())] = parsed
		return true
	})
	if propErr != nil {
		return nil, propErr
	}
	return desc, nil
}

func parsePropertySpec(spec gjson.Result) (PropertySpec, error) {
	var out PropertySpec

	switch spec.Get("type").String() {
	case "bool":
		out.Type = TypeBool
	case "int":
		out.Type = TypeInt
	case "float", "number":
		out.Type = TypeFloat
	case "string":
		out.Type = TypeString
	default:
		return out, fmt.Errorf("unknown type %q", spec.Get("type").String())
	}

	if m := spec.Get("minimum"); m.Exists() {
		v := m.Float()
		out.Minimum = &v
	}
	if m := spec.Get("maximum"); m.Exists() {
		v := m.Float()
		out.Maximum = &v
	}
	return out, nil
}
