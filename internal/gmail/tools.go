package gmail

import (
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/handsfree/internal/hostkit"
	"github.com/baalimago/handsfree/pkg/catalog"
)

// Register mounts every Gmail operation on the registry. The scopes
// are the ones actually granted. Read operations stay in the catalog
// regardless and check the scopes at call time.
func Register(reg *hostkit.Registry, client Client, scopes []string) {
	reg.Register(SendTool{client: client})
	reg.Register(ListTool{client: client, scopes: scopes})
	reg.Register(GetTool{client: client, scopes: scopes})
}

func debugLogCall(name, args string) {
	if misc.Truthy(os.Getenv("DEBUG_CALL")) {
		ancli.Noticef("CALLED: %v(%v)\n", name, args)
	}
}

var sendSpec = catalog.Specification{
	Name:        "send_email",
	Description: "Sends an email message. Requires 'to' address, 'subject', and 'body' text.",
	Inputs: &catalog.InputSchema{
		Type:     "object",
		Required: []string{"to", "subject", "body"},
		Properties: map[string]catalog.ParameterObject{
			"to":      {Type: "string", Description: "Recipient email address."},
			"subject": {Type: "string", Description: "Subject line of the email."},
			"body":    {Type: "string", Description: "Plaintext body of the email."},
		},
	},
}

type SendTool struct {
	client Client
}

func (s SendTool) Call(input catalog.Input) (string, error) {
	to, err := input.String("to")
	if err != nil {
		return "", err
	}
	subject, err := input.String("subject")
	if err != nil {
		return "", err
	}
	body, err := input.String("body")
	if err != nil {
		return "", err
	}
	debugLogCall("send_email", fmt.Sprintf("to: '%v', subject: '%v'", to, subject))
	raw, err := buildMessage(to, subject, body)
	if err != nil {
		return "", err
	}
	id, err := s.client.Send(raw)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return fmt.Sprintf("Email sent successfully to %v with subject '%v'. Message ID: %v", to, subject, id), nil
}

func (s SendTool) Specification() catalog.Specification {
	return sendSpec
}

var listSpec = catalog.Specification{
	Name:        "list_emails",
	Description: "Lists email messages matching a query (requires readonly or modify scope).",
	Inputs: &catalog.InputSchema{
		Type:     "object",
		Required: []string{},
		Properties: map[string]catalog.ParameterObject{
			"query":       {Type: "string", Description: "Gmail search query, same syntax as the Gmail search box. Empty lists the most recent messages."},
			"max_results": {Type: "integer", Description: "Maximum amount of messages to return, defaults to 10, capped at 50."},
		},
	},
}

type ListTool struct {
	client Client
	scopes []string
}

func (l ListTool) Call(input catalog.Input) (string, error) {
	if !hasReadScope(l.scopes) {
		return "Error: Insufficient scope to list emails. Requires gmail.readonly or gmail.modify.", nil
	}
	query := ""
	if _, ok := input["query"]; ok {
		var err error
		query, err = input.String("query")
		if err != nil {
			return "", err
		}
	}
	maxResults := defaultListMax
	if _, ok := input["max_results"]; ok {
		var err error
		maxResults, err = input.Int("max_results")
		if err != nil {
			return "", err
		}
	}
	debugLogCall("list_emails", fmt.Sprintf("query: '%v', max_results: %v", query, maxResults))
	return listEmails(l.client, query, maxResults)
}

func (l ListTool) Specification() catalog.Specification {
	return listSpec
}

var getSpec = catalog.Specification{
	Name:        "get_email",
	Description: "Gets the content of a specific email message by ID (requires readonly or modify scope).",
	Inputs: &catalog.InputSchema{
		Type:     "object",
		Required: []string{"message_id"},
		Properties: map[string]catalog.ParameterObject{
			"message_id": {Type: "string", Description: "ID of the message to fetch."},
			"body_format": {
				Type:        "string",
				Description: "Body rendering, the full decoded body or just the snippet.",
				Enum:        &[]string{"full", "snippet"},
			},
		},
	},
}

type GetTool struct {
	client Client
	scopes []string
}

func (g GetTool) Call(input catalog.Input) (string, error) {
	if !hasReadScope(g.scopes) {
		return "Error: Insufficient scope to get email. Requires gmail.readonly or gmail.modify.", nil
	}
	id, err := input.String("message_id")
	if err != nil {
		return "", err
	}
	bodyFormat := "full"
	if _, ok := input["body_format"]; ok {
		bodyFormat, err = input.String("body_format")
		if err != nil {
			return "", err
		}
	}
	debugLogCall("get_email", fmt.Sprintf("message_id: '%v', body_format: '%v'", id, bodyFormat))
	return getEmail(g.client, id, bodyFormat)
}

func (g GetTool) Specification() catalog.Specification {
	return getSpec
}
