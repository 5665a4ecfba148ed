package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	gmailapi "google.golang.org/api/gmail/v1"
)

const (
	defaultListMax = 10
	listMaxCap     = 50
)

// hasReadScope reports whether the granted scopes allow reading mail.
func hasReadScope(scopes []string) bool {
	return slices.Contains(scopes, ScopeReadonly) || slices.Contains(scopes, ScopeModify)
}

// listEmails renders one summary line per matching message.
func listEmails(client Client, query string, maxResults int) (string, error) {
	if maxResults <= 0 {
		maxResults = defaultListMax
	}
	if maxResults > listMaxCap {
		maxResults = listMaxCap
	}
	resp, err := client.List(query, int64(maxResults))
	if err != nil {
		return "", fmt.Errorf("failed to list emails: %w", err)
	}
	if len(resp.Messages) == 0 {
		return "No messages found.", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %v message(s):\n", len(resp.Messages))
	for _, m := range resp.Messages {
		msg, err := client.Get(m.Id)
		if err != nil {
			return "", fmt.Errorf("failed to get email '%v': %w", m.Id, err)
		}
		fmt.Fprintf(&b, "- ID: %v | From: %v | Subject: %v | Date: %v\n",
			m.Id, headerValue(msg, "From"), headerValue(msg, "Subject"), headerValue(msg, "Date"))
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// getEmail renders the headers plus the body of one message. The
// snippet format skips body decoding entirely.
func getEmail(client Client, id, bodyFormat string) (string, error) {
	msg, err := client.Get(id)
	if err != nil {
		return "", fmt.Errorf("failed to get email '%v': %w", id, err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %v\n", headerValue(msg, "From"))
	fmt.Fprintf(&b, "To: %v\n", headerValue(msg, "To"))
	fmt.Fprintf(&b, "Subject: %v\n", headerValue(msg, "Subject"))
	fmt.Fprintf(&b, "Date: %v\n", headerValue(msg, "Date"))
	b.WriteString("\n")
	if bodyFormat == "snippet" {
		b.WriteString(msg.Snippet)
		return b.String(), nil
	}
	body, err := messageBody(msg.Payload)
	if err != nil {
		return "", err
	}
	if body == "" {
		body = msg.Snippet
	}
	b.WriteString(body)
	return b.String(), nil
}

func headerValue(msg *gmailapi.Message, name string) string {
	if msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// messageBody walks the MIME tree, preferring text/plain parts and
// falling back to flattened text/html.
func messageBody(part *gmailapi.MessagePart) (string, error) {
	if part == nil {
		return "", nil
	}
	if plain := findPart(part, "text/plain"); plain != nil {
		return decodeBody(plain.Body)
	}
	if marked := findPart(part, "text/html"); marked != nil {
		raw, err := decodeBody(marked.Body)
		if err != nil {
			return "", err
		}
		return htmlToText(strings.NewReader(raw))
	}
	if part.Body != nil && part.Body.Data != "" {
		return decodeBody(part.Body)
	}
	return "", nil
}

func findPart(part *gmailapi.MessagePart, mimeType string) *gmailapi.MessagePart {
	if part == nil {
		return nil
	}
	if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
		return part
	}
	for _, child := range part.Parts {
		if found := findPart(child, mimeType); found != nil {
			return found
		}
	}
	return nil
}

func decodeBody(body *gmailapi.MessagePartBody) (string, error) {
	if body == nil || body.Data == "" {
		return "", nil
	}
	b, err := base64.URLEncoding.DecodeString(body.Data)
	if err != nil {
		b, err = base64.RawURLEncoding.DecodeString(body.Data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode message body: %w", err)
	}
	return string(b), nil
}

// htmlToText strips markup by lexing it and keeping only the text
// tokens, trimmed and newline joined.
func htmlToText(r io.Reader) (string, error) {
	var text strings.Builder
	tokenizer := html.NewTokenizer(r)
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			if tokenizer.Err() == io.EOF {
				break
			}
			return "", fmt.Errorf("tokenizer error: %w", tokenizer.Err())
		}
		if tt == html.TextToken {
			trimmed := bytes.TrimSpace(tokenizer.Text())
			if len(trimmed) > 0 {
				text.Write(trimmed)
				text.WriteRune('\n')
			}
		}
	}
	return strings.TrimSuffix(text.String(), "\n"), nil
}
