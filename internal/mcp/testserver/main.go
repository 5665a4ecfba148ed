package main

import (
	"encoding/json"
	"os"
	"strings"
)

// Stdio JSON-RPC host used by the client and session tests. It
// advertises an echo and a reverse tool and flags the text "error" as
// a failed call.

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func main() {
	dec := json.NewDecoder(os.Stdin)
	enc := json.NewEncoder(os.Stdout)
	for {
		var req request
		if err := dec.Decode(&req); err != nil {
			return
		}
		if strings.HasPrefix(req.Method, "notifications/") {
			continue
		}
		result, rpcErr := handle(req)
		reply(enc, req.ID, result, rpcErr)
	}
}

func handle(req request) (any, map[string]any) {
	switch req.Method {
	case "initialize":
		return map[string]any{
			"protocolVersion": "2025-06-18",
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      map[string]any{"name": "testserver", "version": "0"},
		}, nil
	case "tools/list":
		return map[string]any{
			"tools": []any{
				toolSpec("echo", "echo text"),
				toolSpec("reverse", "reverse text"),
			},
		}, nil
	case "tools/call":
		return callResult(req.Params), nil
	default:
		return nil, map[string]any{"code": -32601, "message": "method not found"}
	}
}

func toolSpec(name, desc string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": desc,
		"inputSchema": map[string]any{
			"type":     "object",
			"required": []string{"text"},
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "text to " + name,
				},
			},
		},
	}
}

func callResult(params json.RawMessage) map[string]any {
	var p struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	json.Unmarshal(params, &p)
	text, _ := p.Arguments["text"].(string)
	answer := text
	if p.Name == "reverse" {
		answer = reversed(text)
	}
	return map[string]any{
		"content": []map[string]any{{"type": "text", "text": answer}},
		"isError": text == "error",
	}
}

func reversed(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func reply(enc *json.Encoder, id int, result any, rpcErr map[string]any) {
	msg := map[string]any{"jsonrpc": "2.0", "id": id}
	if rpcErr != nil {
		msg["error"] = rpcErr
	} else {
		msg["result"] = result
	}
	enc.Encode(msg)
}
