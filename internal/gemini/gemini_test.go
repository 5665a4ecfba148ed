package gemini

import (
	"testing"

	"github.com/baalimago/handsfree/pkg/catalog"
)

func TestSetup(t *testing.T) {
	v := Default
	mt := 2048
	v.MaxTokens = &mt
	v.Model = "gemini-custom"

	t.Setenv("GEMINI_API_KEY", "key")
	if err := v.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if v.Model != "gemini-custom" {
		t.Errorf("expected model kept, got %q", v.Model)
	}
	if v.URL != ChatURL {
		t.Errorf("expected default url, got %q", v.URL)
	}
	if v.toolChoice == nil || *v.toolChoice != "auto" {
		t.Errorf("tool choice expected 'auto', got %#v", v.toolChoice)
	}
}

func TestSetupMissingKey(t *testing.T) {
	v := Default
	t.Setenv("GEMINI_API_KEY", "")
	if err := v.Setup(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY unset")
	}
}

func TestSetupFillsEmptyModel(t *testing.T) {
	v := Planner{}
	t.Setenv("GEMINI_API_KEY", "key")
	if err := v.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if v.Model != Default.Model {
		t.Errorf("expected default model, got %q", v.Model)
	}
}

func TestRegisterTool(t *testing.T) {
	v := Default
	t.Setenv("GEMINI_API_KEY", "key")
	if err := v.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	v.RegisterTool(catalog.Specification{
		Name:        "send_email",
		Description: "send an email",
		Inputs: &catalog.InputSchema{
			Type:     "object",
			Required: []string{"to"},
			Properties: map[string]catalog.ParameterObject{
				"to": {Type: "string", Description: "recipient"},
			},
		},
	})
	// nil schema should become an empty object schema
	v.RegisterTool(catalog.Specification{Name: "open_keynote", Description: "launch the app"})

	if len(v.tools) != 2 {
		t.Fatalf("expected 2 registered tools, got %v", len(v.tools))
	}
	if v.tools[0].Type != "function" || v.tools[0].Function.Name != "send_email" {
		t.Errorf("unexpected first tool: %+v", v.tools[0])
	}
	second := v.tools[1].Function.Inputs
	if second.Type != "object" || second.Properties == nil || second.Required == nil {
		t.Errorf("expected patched empty schema, got %+v", second)
	}
}
