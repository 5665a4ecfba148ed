package mcp

import "encoding/json"

// Request is a JSON-RPC 2.0 request or, when ID is zero and therefore
// omitted, a notification.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id,omitempty"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toolListResult is the payload of a tools/list response.
type toolListResult struct {
	Tools []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		InputSchema struct {
			Type       string   `json:"type"`
			Required   []string `json:"required"`
			Properties map[string]struct {
				Type        string    `json:"type"`
				Description string    `json:"description"`
				Enum        *[]string `json:"enum,omitempty"`
			} `json:"properties"`
		} `json:"inputSchema"`
	} `json:"tools"`
}

// callResult is the payload of a tools/call response.
type callResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}
