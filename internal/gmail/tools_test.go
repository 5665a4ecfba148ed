package gmail

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/handsfree/internal/hostkit"
	"github.com/baalimago/handsfree/pkg/catalog"
	gmailapi "google.golang.org/api/gmail/v1"
)

type mockClient struct {
	sentRaw  string
	sendID   string
	sendErr  error
	listResp *gmailapi.ListMessagesResponse
	listErr  error
	gotQuery string
	gotMax   int64
	messages map[string]*gmailapi.Message
	calls    int
}

func (m *mockClient) Send(raw string) (string, error) {
	m.calls++
	m.sentRaw = raw
	if m.sendErr != nil {
		return "", m.sendErr
	}
	return m.sendID, nil
}

func (m *mockClient) List(query string, maxResults int64) (*gmailapi.ListMessagesResponse, error) {
	m.calls++
	m.gotQuery = query
	m.gotMax = maxResults
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResp, nil
}

func (m *mockClient) Get(id string) (*gmailapi.Message, error) {
	m.calls++
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("no such message: %v", id)
	}
	return msg, nil
}

func testMessage(id, from, subject, date, body string) *gmailapi.Message {
	return &gmailapi.Message{
		Id:      id,
		Snippet: body,
		Payload: &gmailapi.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "From", Value: from},
				{Name: "To", Value: "me@example.com"},
				{Name: "Subject", Value: subject},
				{Name: "Date", Value: date},
			},
			Body: &gmailapi.MessagePartBody{Data: b64(body)},
		},
	}
}

func TestSendTool(t *testing.T) {
	t.Run("it should send the message and report the assigned id", func(t *testing.T) {
		client := &mockClient{sendID: "abc123"}
		got, err := SendTool{client: client}.Call(catalog.Input{
			"to":      "friend@example.com",
			"subject": "Hi",
			"body":    "yo",
		})
		if err != nil {
			t.Fatalf("failed to send: %v", err)
		}
		want := "Email sent successfully to friend@example.com with subject 'Hi'. Message ID: abc123"
		testboil.FailTestIfDiff(t, got, want)
		decoded, err := base64.URLEncoding.DecodeString(client.sentRaw)
		if err != nil {
			t.Fatalf("sent payload should be base64url: %v", err)
		}
		testboil.AssertStringContains(t, string(decoded), "To: friend@example.com")
	})

	t.Run("it should not call gmail when the recipient is malformed", func(t *testing.T) {
		client := &mockClient{}
		_, err := SendTool{client: client}.Call(catalog.Input{
			"to":      "not-an-address",
			"subject": "Hi",
			"body":    "yo",
		})
		if err == nil {
			t.Fatal("expected error on malformed recipient")
		}
		if client.calls != 0 {
			t.Fatalf("expected no api calls, got: %v", client.calls)
		}
	})

	t.Run("it should propagate api failures", func(t *testing.T) {
		client := &mockClient{sendErr: errors.New("quota exceeded")}
		_, err := SendTool{client: client}.Call(catalog.Input{
			"to":      "friend@example.com",
			"subject": "Hi",
			"body":    "yo",
		})
		if err == nil {
			t.Fatal("expected error")
		}
		testboil.AssertStringContains(t, err.Error(), "failed to send email")
	})
}

func TestListTool(t *testing.T) {
	readClient := func() *mockClient {
		return &mockClient{
			listResp: &gmailapi.ListMessagesResponse{
				Messages: []*gmailapi.Message{{Id: "m1"}, {Id: "m2"}},
			},
			messages: map[string]*gmailapi.Message{
				"m1": testMessage("m1", "a@example.com", "first", "Mon, 1 Jan 2024 10:00:00 +0000", "body one"),
				"m2": testMessage("m2", "b@example.com", "second", "Tue, 2 Jan 2024 10:00:00 +0000", "body two"),
			},
		}
	}

	t.Run("it should refuse without a read scope", func(t *testing.T) {
		client := &mockClient{}
		got, err := ListTool{client: client, scopes: []string{ScopeSend}}.Call(catalog.Input{})
		if err != nil {
			t.Fatalf("scope gate should be a result, not an error: %v", err)
		}
		want := "Error: Insufficient scope to list emails. Requires gmail.readonly or gmail.modify."
		testboil.FailTestIfDiff(t, got, want)
		if client.calls != 0 {
			t.Fatalf("expected no api calls, got: %v", client.calls)
		}
	})

	t.Run("it should summarize matching messages", func(t *testing.T) {
		client := readClient()
		got, err := ListTool{client: client, scopes: []string{ScopeReadonly}}.Call(catalog.Input{
			"query":       "from:a",
			"max_results": float64(2),
		})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if client.gotQuery != "from:a" {
			t.Fatalf("expected query to pass through, got: %v", client.gotQuery)
		}
		if client.gotMax != 2 {
			t.Fatalf("expected max_results 2, got: %v", client.gotMax)
		}
		testboil.AssertStringContains(t, got, "Found 2 message(s):")
		testboil.AssertStringContains(t, got, "- ID: m1 | From: a@example.com | Subject: first")
		testboil.AssertStringContains(t, got, "- ID: m2 | From: b@example.com | Subject: second")
	})

	t.Run("it should cap the result window", func(t *testing.T) {
		client := readClient()
		_, err := ListTool{client: client, scopes: []string{ScopeModify}}.Call(catalog.Input{
			"max_results": float64(500),
		})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if client.gotMax != listMaxCap {
			t.Fatalf("expected cap %v, got: %v", listMaxCap, client.gotMax)
		}
	})

	t.Run("it should default the result window", func(t *testing.T) {
		client := readClient()
		_, err := ListTool{client: client, scopes: []string{ScopeReadonly}}.Call(catalog.Input{})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if client.gotMax != defaultListMax {
			t.Fatalf("expected default %v, got: %v", defaultListMax, client.gotMax)
		}
	})

	t.Run("it should report when nothing matches", func(t *testing.T) {
		client := &mockClient{listResp: &gmailapi.ListMessagesResponse{}}
		got, err := ListTool{client: client, scopes: []string{ScopeReadonly}}.Call(catalog.Input{})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		testboil.FailTestIfDiff(t, got, "No messages found.")
	})
}

func TestGetTool(t *testing.T) {
	client := func() *mockClient {
		m := testMessage("m1", "a@example.com", "first", "Mon, 1 Jan 2024 10:00:00 +0000", "the full body text")
		m.Snippet = "snipped preview"
		return &mockClient{messages: map[string]*gmailapi.Message{"m1": m}}
	}

	t.Run("it should refuse without a read scope", func(t *testing.T) {
		got, err := GetTool{client: &mockClient{}, scopes: []string{ScopeSend}}.Call(catalog.Input{
			"message_id": "m1",
		})
		if err != nil {
			t.Fatalf("scope gate should be a result, not an error: %v", err)
		}
		want := "Error: Insufficient scope to get email. Requires gmail.readonly or gmail.modify."
		testboil.FailTestIfDiff(t, got, want)
	})

	t.Run("it should render headers and the decoded body", func(t *testing.T) {
		got, err := GetTool{client: client(), scopes: []string{ScopeReadonly}}.Call(catalog.Input{
			"message_id": "m1",
		})
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		testboil.AssertStringContains(t, got, "From: a@example.com")
		testboil.AssertStringContains(t, got, "Subject: first")
		testboil.AssertStringContains(t, got, "the full body text")
	})

	t.Run("it should return only the snippet when asked", func(t *testing.T) {
		got, err := GetTool{client: client(), scopes: []string{ScopeReadonly}}.Call(catalog.Input{
			"message_id":  "m1",
			"body_format": "snippet",
		})
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		testboil.AssertStringContains(t, got, "snipped preview")
		if strings.Contains(got, "the full body text") {
			t.Fatal("snippet format should skip the body")
		}
	})

	t.Run("it should error on unknown message ids", func(t *testing.T) {
		_, err := GetTool{client: client(), scopes: []string{ScopeReadonly}}.Call(catalog.Input{
			"message_id": "missing",
		})
		if err == nil {
			t.Fatal("expected error")
		}
		testboil.AssertStringContains(t, err.Error(), "failed to get email")
	})
}

func TestHostBoundary(t *testing.T) {
	reg := hostkit.NewRegistry()
	Register(reg, &mockClient{}, []string{ScopeReadonly})
	tool, ok := reg.Get("get_email")
	if !ok {
		t.Fatal("get_email not registered")
	}
	res := hostkit.Invoke(tool, map[string]any{"message_id": "m1", "body_format": "partial"})
	if !res.IsError {
		t.Fatal("expected failure result for enum violation")
	}
}

func TestRegister(t *testing.T) {
	reg := hostkit.NewRegistry()
	Register(reg, &mockClient{}, []string{ScopeSend})
	want := []string{"send_email", "list_emails", "get_email"}
	all := reg.All()
	if len(all) != len(want) {
		t.Fatalf("expected %v tools, got %v", len(want), len(all))
	}
	for i, name := range want {
		if all[i].Specification().Name != name {
			t.Errorf("tool %v: expected %v, got %v", i, name, all[i].Specification().Name)
		}
	}
}
