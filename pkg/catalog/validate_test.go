package catalog

import "testing"

func TestValidateArgs(t *testing.T) {
	spec := Specification{
		Name: "draw_rectangle",
		Inputs: &InputSchema{
			Type:     "object",
			Required: []string{"x", "y"},
			Properties: map[string]ParameterObject{
				"x":      {Type: "integer"},
				"y":      {Type: "integer"},
				"label":  {Type: "string"},
				"format": {Type: "string", Enum: &[]string{"full", "snippet"}},
				"scale":  {Type: "number"},
			},
		},
	}

	testCases := []struct {
		desc    string
		in      Input
		wantErr bool
	}{
		{
			desc: "it should accept valid arguments",
			in:   Input{"x": float64(10), "y": 20, "label": "hi"},
		},
		{
			desc:    "it should reject missing required parameters",
			in:      Input{"x": float64(10)},
			wantErr: true,
		},
		{
			desc:    "it should reject unknown parameters",
			in:      Input{"x": float64(10), "y": 20, "nope": 1},
			wantErr: true,
		},
		{
			desc:    "it should reject fractional integers",
			in:      Input{"x": 10.5, "y": 20},
			wantErr: true,
		},
		{
			desc:    "it should reject wrong types",
			in:      Input{"x": "ten", "y": 20},
			wantErr: true,
		},
		{
			desc:    "it should reject values outside the enum",
			in:      Input{"x": 1, "y": 2, "format": "short"},
			wantErr: true,
		},
		{
			desc: "it should accept values inside the enum",
			in:   Input{"x": 1, "y": 2, "format": "snippet"},
		},
		{
			desc: "it should accept numbers for number parameters",
			in:   Input{"x": 1, "y": 2, "scale": 1.25},
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			err := spec.ValidateArgs(tC.in)
			if tC.wantErr && err == nil {
				t.Fatalf("expected error, got none")
			}
			if !tC.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateArgsNoSchema(t *testing.T) {
	spec := Specification{Name: "open_keynote"}
	if err := spec.ValidateArgs(Input{}); err != nil {
		t.Fatalf("unexpected error on empty input: %v", err)
	}
	if err := spec.ValidateArgs(Input{"x": 1}); err == nil {
		t.Fatalf("expected error when passing arguments to parameterless operation")
	}
}
