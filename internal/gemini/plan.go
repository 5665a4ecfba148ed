package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/handsfree/pkg/catalog"
)

// Plan sends one completion request and returns the operation calls
// the model decided on, in the order it emitted them. A reply without
// any tool calls, or with arguments which aren't valid JSON, is an
// error since there is no followup round to recover in.
func (p *Planner) Plan(ctx context.Context, systemPrompt, instruction string) ([]catalog.Call, error) {
	req, err := p.createRequest(ctx, systemPrompt, instruction)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("unexpected status code: %v, body: %v", res.Status, string(body))
	}
	var completion chatCompletion
	if err := json.NewDecoder(res.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode completion: %w", err)
	}
	if p.debug {
		ancli.PrintOK(fmt.Sprintf("completion: %v\n", debug.IndentedJsonFmt(completion)))
	}
	return p.parseCompletion(completion)
}

func (p *Planner) createRequest(ctx context.Context, systemPrompt, instruction string) (*http.Request, error) {
	reqData := req{
		Model:          p.Model,
		MaxTokens:      p.MaxTokens,
		Temperature:    &p.Temperature,
		TopP:           &p.TopP,
		ResponseFormat: responseFormat{Type: "text"},
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: instruction},
		},
		Stream:     false,
		Tools:      p.tools,
		ToolChoice: p.toolChoice,
	}
	if p.debug {
		ancli.PrintOK(fmt.Sprintf("planner request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", p.apiKey))
	return req, nil
}

func (p *Planner) parseCompletion(completion chatCompletion) ([]catalog.Call, error) {
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("model reply contained no choices")
	}
	reply := completion.Choices[0].Message
	if len(reply.ToolCalls) == 0 {
		return nil, fmt.Errorf("model reply contained no operation calls, content: %q", reply.Content)
	}
	calls := make([]catalog.Call, 0, len(reply.ToolCalls))
	for _, tc := range reply.ToolCalls {
		var input catalog.Input
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &input); err != nil {
				return nil, fmt.Errorf("failed to unmarshal arguments for '%v': %w, argsString: %v", tc.Function.Name, err, tc.Function.Arguments)
			}
		}
		calls = append(calls, catalog.Call{
			ID:     tc.ID,
			Name:   tc.Function.Name,
			Inputs: &input,
		})
	}
	return calls, nil
}
