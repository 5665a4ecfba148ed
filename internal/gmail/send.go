package gmail

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"
)

// Authenticated user shorthand accepted by the Gmail API.
const gmailUser = "me"

// Client is the slice of the Gmail API the tools need. Narrowed to an
// interface so tests can run against a mock instead of live mail.
type Client interface {
	// Send submits a base64url encoded RFC 822 message and returns the
	// assigned message ID.
	Send(raw string) (string, error)
	List(query string, maxResults int64) (*gmailapi.ListMessagesResponse, error)
	Get(id string) (*gmailapi.Message, error)
}

type apiClient struct {
	svc *gmailapi.Service
}

// NewClient wraps a Gmail service into the tool facing Client.
func NewClient(svc *gmailapi.Service) Client {
	return &apiClient{svc: svc}
}

func (a *apiClient) Send(raw string) (string, error) {
	msg, err := a.svc.Users.Messages.Send(gmailUser, &gmailapi.Message{Raw: raw}).Do()
	if err != nil {
		return "", err
	}
	return msg.Id, nil
}

func (a *apiClient) List(query string, maxResults int64) (*gmailapi.ListMessagesResponse, error) {
	call := a.svc.Users.Messages.List(gmailUser).MaxResults(maxResults)
	if query != "" {
		call = call.Q(query)
	}
	return call.Do()
}

func (a *apiClient) Get(id string) (*gmailapi.Message, error) {
	return a.svc.Users.Messages.Get(gmailUser, id).Format("full").Do()
}

// buildMessage assembles a plaintext RFC 822 message and encodes it in
// the base64url form the Gmail API expects.
func buildMessage(to, subject, body string) (string, error) {
	if _, err := mail.ParseAddress(to); err != nil {
		return "", fmt.Errorf("invalid recipient address '%v': %w", to, err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "To: %v\r\n", to)
	fmt.Fprintf(&b, "Subject: %v\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}
