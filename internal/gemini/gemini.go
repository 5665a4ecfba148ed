package gemini

import (
	"fmt"
	"net/http"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/handsfree/pkg/catalog"
)

const ChatURL = "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions"

var Default = Planner{
	Model:       "gemini-2.5-flash",
	Temperature: 1.0,
	TopP:        1.0,
	URL:         ChatURL,
}

// Planner asks Gemini's OpenAI compatible endpoint to turn one
// instruction into an ordered list of operation calls. It makes exactly
// one completion request per Plan and only accepts answers through the
// function calling interface, never free text.
type Planner struct {
	Model       string  `json:"model"`
	MaxTokens   *int    `json:"max_tokens"` // Use a pointer to allow null value
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	URL         string  `json:"url"`

	client     *http.Client
	apiKey     string
	toolChoice *string
	tools      []toolSuper
	debug      bool
}

// Setup reads GEMINI_API_KEY and prepares the http client. Absence of
// the key is an error since nothing can be planned without the model.
func (p *Planner) Setup() error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("environment variable 'GEMINI_API_KEY' not set")
	}
	p.apiKey = apiKey
	p.client = &http.Client{}
	if p.URL == "" {
		p.URL = ChatURL
	}
	if p.Model == "" {
		p.Model = Default.Model
	}
	toolChoice := "auto"
	p.toolChoice = &toolChoice
	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("GEMINI_DEBUG")) {
		p.debug = true
	}
	return nil
}

// RegisterTool adds one advertised operation to the request's tool
// list.
func (p *Planner) RegisterTool(spec catalog.Specification) {
	inputs := catalog.InputSchema{}
	if spec.Inputs != nil {
		inputs = *spec.Inputs
	}
	inputs.Patch()
	p.tools = append(p.tools, toolSuper{
		Type: "function",
		Function: tool{
			Name:        spec.Name,
			Description: spec.Description,
			Inputs:      inputs,
		},
	})
}
