package catalog

import (
	"encoding/json"
	"fmt"
)

type Input map[string]any

// String extracts a string argument by key.
func (i Input) String(key string) (string, error) {
	v, ok := i[key]
	if !ok {
		return "", fmt.Errorf("missing parameter '%v'", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter '%v' should be string, got %T", key, v)
	}
	return s, nil
}

// Int extracts an integer argument by key. JSON decoding hands numbers
// over as float64, so whole float64 values are accepted as integers.
func (i Input) Int(key string) (int, error) {
	v, ok := i[key]
	if !ok {
		return 0, fmt.Errorf("missing parameter '%v'", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("parameter '%v' should be integer, got %v", key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("parameter '%v' should be integer, got %T", key, v)
	}
}

// Call is one requested operation invocation: the name of an advertised
// operation plus the concrete arguments decided by the model.
type Call struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Inputs *Input `json:"inputs,omitempty"`
}

// PrettyPrint the call, showing name and what input params is used
// on a concise way
func (c Call) PrettyPrint() string {
	paramStr := ""
	i := 0
	var inp Input
	if c.Inputs != nil {
		inp = *c.Inputs
	}
	lenInp := len(inp)
	for flag, val := range inp {
		paramStr += fmt.Sprintf("'%v': '%v'", flag, val)
		if i < lenInp-1 {
			paramStr += ","
		}
		i++
	}

	return fmt.Sprintf("Call: '%s', inputs: [ %s ]", c.Name, paramStr)
}

func (c Call) JSON() string {
	json, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("ERROR: Failed to marshal: %v", err)
	}
	return string(json)
}

type Specification struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Inputs      *InputSchema `json:"input_schema,omitempty"`
}

type InputSchema struct {
	Type       string                     `json:"type"`
	Required   []string                   `json:"required"`
	Properties map[string]ParameterObject `json:"properties"`
}

// Patch the input schema, padding initialization inconsistencies from
// the various tool list producers
func (is *InputSchema) Patch() {
	if is.Required == nil {
		is.Required = make([]string, 0)
	}
	if is.Properties == nil {
		is.Properties = make(map[string]ParameterObject)
	}
	if is.Type == "" {
		is.Type = "object"
	}
}

// IsOk checks if the input schema is ok
func (is *InputSchema) IsOk() bool {
	for _, p := range is.Properties {
		if p.Type == "array" && p.Items == nil {
			return false
		}
	}
	return true
}

type ParameterObject struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Enum        *[]string        `json:"enum,omitempty"`
	Items       *ParameterObject `json:"items,omitempty"`
}
