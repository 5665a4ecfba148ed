package hostkit

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/baalimago/handsfree/pkg/catalog"
)

// NewServer mounts every registered tool on an MCP server ready for
// stdio serving.
func NewServer(name, version string, reg *Registry) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)
	for _, t := range reg.All() {
		s.AddTool(convertTool(t.Specification()), toolHandler(t))
	}
	return s
}

// Serve blocks on stdio until the client closes the connection.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func convertTool(spec catalog.Specification) mcp.Tool {
	schema := mcp.ToolInputSchema{Type: "object"}
	if spec.Inputs != nil {
		schema.Type = spec.Inputs.Type
		schema.Required = spec.Inputs.Required
		props := make(map[string]any, len(spec.Inputs.Properties))
		for name, p := range spec.Inputs.Properties {
			prop := map[string]any{
				"type":        p.Type,
				"description": p.Description,
			}
			if p.Enum != nil {
				prop["enum"] = *p.Enum
			}
			props[name] = prop
		}
		schema.Properties = props
	}
	return mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		InputSchema: schema,
	}
}

func toolHandler(t Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return Invoke(t, req.GetArguments()), nil
	}
}

// Invoke runs one tool call, folding argument validation errors, tool
// errors and panics into failure results. Nothing escapes the host
// boundary as a transport error.
func Invoke(t Tool, args map[string]any) (res *mcp.CallToolResult) {
	defer func() {
		if r := recover(); r != nil {
			res = failure(fmt.Sprintf("tool '%v' panicked: %v", t.Specification().Name, r))
		}
	}()
	input := catalog.Input(args)
	if err := t.Specification().ValidateArgs(input); err != nil {
		return failure(err.Error())
	}
	out, err := t.Call(input)
	if err != nil {
		return failure(err.Error())
	}
	return success(out)
}

func success(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
	}
}

func failure(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
		IsError: true,
	}
}
