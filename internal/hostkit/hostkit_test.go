package hostkit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/baalimago/handsfree/pkg/catalog"
)

type mockTool struct {
	spec    catalog.Specification
	reply   string
	err     error
	panics  bool
	gotArgs catalog.Input
}

func (m *mockTool) Call(input catalog.Input) (string, error) {
	m.gotArgs = input
	if m.panics {
		panic("mock blew up")
	}
	return m.reply, m.err
}

func (m *mockTool) Specification() catalog.Specification {
	return m.spec
}

func echoSpec() catalog.Specification {
	return catalog.Specification{
		Name:        "echo",
		Description: "echo text",
		Inputs: &catalog.InputSchema{
			Type:     "object",
			Required: []string{"text"},
			Properties: map[string]catalog.ParameterObject{
				"text": {Type: "string", Description: "text to echo"},
			},
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatalf("expected content in result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	a := &mockTool{spec: catalog.Specification{Name: "a"}}
	b := &mockTool{spec: catalog.Specification{Name: "b"}}
	reg.Register(a)
	reg.Register(b)
	// re-registration should not duplicate
	reg.Register(a)

	if got, ok := reg.Get("a"); !ok || got.Specification().Name != "a" {
		t.Fatalf("expected to get tool a back")
	}
	all := reg.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 tools, got %v", len(all))
	}
	if all[0].Specification().Name != "a" || all[1].Specification().Name != "b" {
		t.Fatalf("registration order not kept: %v, %v", all[0].Specification().Name, all[1].Specification().Name)
	}

	reg.Reset()
	if len(reg.All()) != 0 {
		t.Fatalf("expected empty registry after reset")
	}
}

func TestInvoke(t *testing.T) {
	testCases := []struct {
		desc     string
		tool     *mockTool
		args     map[string]any
		wantErr  bool
		wantText string
	}{
		{
			desc:     "it should return the tool output on success",
			tool:     &mockTool{spec: echoSpec(), reply: "hello"},
			args:     map[string]any{"text": "hello"},
			wantText: "hello",
		},
		{
			desc:     "it should fold missing arguments into a failure result",
			tool:     &mockTool{spec: echoSpec(), reply: "unused"},
			args:     map[string]any{},
			wantErr:  true,
			wantText: "missing required parameter 'text'",
		},
		{
			desc:     "it should fold wrong argument types into a failure result",
			tool:     &mockTool{spec: echoSpec(), reply: "unused"},
			args:     map[string]any{"text": 12},
			wantErr:  true,
			wantText: "should be string",
		},
		{
			desc:    "it should fold tool errors into a failure result",
			tool:    &mockTool{spec: echoSpec(), err: errors.New("bridge broke")},
			args:    map[string]any{"text": "hi"},
			wantErr: true,

			wantText: "bridge broke",
		},
		{
			desc:     "it should recover panics into a failure result",
			tool:     &mockTool{spec: echoSpec(), panics: true},
			args:     map[string]any{"text": "hi"},
			wantErr:  true,
			wantText: "panicked",
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			res := Invoke(tC.tool, tC.args)
			if res.IsError != tC.wantErr {
				t.Fatalf("IsError = %v, want %v", res.IsError, tC.wantErr)
			}
			if got := resultText(t, res); !strings.Contains(got, tC.wantText) {
				t.Fatalf("result %q does not contain %q", got, tC.wantText)
			}
		})
	}
}

func TestInvokeDoesNotCallToolOnBadArgs(t *testing.T) {
	tool := &mockTool{spec: echoSpec(), reply: "unused"}
	Invoke(tool, map[string]any{"text": 12})
	if tool.gotArgs != nil {
		t.Fatalf("tool should not have been called, got args %v", tool.gotArgs)
	}
}

func TestToolHandler(t *testing.T) {
	tool := &mockTool{spec: echoSpec(), reply: "pong"}
	handler := toolHandler(tool)

	req := mcp.CallToolRequest{}
	req.Params.Name = "echo"
	req.Params.Arguments = map[string]any{"text": "ping"}

	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned transport error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected failure result: %v", resultText(t, res))
	}
	if got := resultText(t, res); got != "pong" {
		t.Fatalf("expected 'pong', got %q", got)
	}
	if text, _ := tool.gotArgs.String("text"); text != "ping" {
		t.Fatalf("arguments not forwarded, got %v", tool.gotArgs)
	}
}

func TestConvertTool(t *testing.T) {
	spec := echoSpec()
	enum := []string{"full", "snippet"}
	spec.Inputs.Properties["format"] = catalog.ParameterObject{Type: "string", Description: "how much", Enum: &enum}

	converted := convertTool(spec)
	if converted.Name != "echo" || converted.Description != "echo text" {
		t.Fatalf("name/description not mapped: %+v", converted)
	}
	if converted.InputSchema.Type != "object" {
		t.Fatalf("expected object schema, got %q", converted.InputSchema.Type)
	}
	if len(converted.InputSchema.Required) != 1 || converted.InputSchema.Required[0] != "text" {
		t.Fatalf("required not mapped: %v", converted.InputSchema.Required)
	}
	textProp, ok := converted.InputSchema.Properties["text"].(map[string]any)
	if !ok {
		t.Fatalf("text property not mapped: %T", converted.InputSchema.Properties["text"])
	}
	if textProp["type"] != "string" {
		t.Fatalf("property type not mapped: %v", textProp)
	}
	formatProp := converted.InputSchema.Properties["format"].(map[string]any)
	if _, ok := formatProp["enum"]; !ok {
		t.Fatalf("enum not mapped: %v", formatProp)
	}

	// parameterless tools still advertise an object schema
	bare := convertTool(catalog.Specification{Name: "open_keynote"})
	if bare.InputSchema.Type != "object" {
		t.Fatalf("expected object schema for bare tool, got %q", bare.InputSchema.Type)
	}
}
