package catalog

import (
	"fmt"
	"slices"
)

// ValidateArgs checks in against the specification's input schema. It
// enforces required parameters, rejects unknown ones and verifies that
// each value matches the declared primitive type.
func (s Specification) ValidateArgs(in Input) error {
	if s.Inputs == nil {
		if len(in) > 0 {
			return fmt.Errorf("operation '%v' takes no parameters, got %v", s.Name, len(in))
		}
		return nil
	}
	for _, req := range s.Inputs.Required {
		if _, ok := in[req]; !ok {
			return fmt.Errorf("missing required parameter '%v'", req)
		}
	}
	for name, val := range in {
		prop, ok := s.Inputs.Properties[name]
		if !ok {
			return fmt.Errorf("unknown parameter '%v'", name)
		}
		if err := prop.checkValue(name, val); err != nil {
			return err
		}
	}
	return nil
}

func (p ParameterObject) checkValue(name string, val any) error {
	switch p.Type {
	case "string":
		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("parameter '%v' should be string, got %T", name, val)
		}
		if p.Enum != nil && !slices.Contains(*p.Enum, s) {
			return fmt.Errorf("parameter '%v' should be one of %v, got '%v'", name, *p.Enum, s)
		}
	case "integer":
		switch v := val.(type) {
		case int:
		case float64:
			if v != float64(int(v)) {
				return fmt.Errorf("parameter '%v' should be integer, got %v", name, v)
			}
		default:
			return fmt.Errorf("parameter '%v' should be integer, got %T", name, val)
		}
	case "number":
		switch val.(type) {
		case int, float64:
		default:
			return fmt.Errorf("parameter '%v' should be number, got %T", name, val)
		}
	}
	return nil
}
