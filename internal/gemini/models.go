package gemini

import "github.com/baalimago/handsfree/pkg/catalog"

type toolSuper struct {
	Type     string `json:"type"`
	Function tool   `json:"function"`
}

type tool struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Inputs      catalog.InputSchema `json:"parameters"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type req struct {
	Model          string         `json:"model,omitempty"`
	ResponseFormat responseFormat `json:"response_format,omitempty"`
	Messages       []message      `json:"messages,omitempty"`
	Stream         bool           `json:"stream"`
	MaxTokens      *int           `json:"max_tokens,omitempty"`
	Temperature    *float64       `json:"temperature,omitempty"`
	TopP           *float64       `json:"top_p,omitempty"`
	ToolChoice     *string        `json:"tool_choice,omitempty"`
	Tools          []toolSuper    `json:"tools,omitempty"`
}

type chatCompletion struct {
	Id      string   `json:"id"`
	Object  string   `json:"object"`
	Created int      `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
}

type choice struct {
	Index        int          `json:"index"`
	Message      replyMessage `json:"message"`
	FinishReason string       `json:"finish_reason"`
}

type replyMessage struct {
	Role      string      `json:"role"`
	Content   string      `json:"content"`
	ToolCalls []toolsCall `json:"tool_calls"`
}

type toolsCall struct {
	Function fn     `json:"function"`
	ID       string `json:"id"`
	Index    int    `json:"index"`
	Type     string `json:"type"`
}

type fn struct {
	Arguments string `json:"arguments"`
	Name      string `json:"name"`
}
