package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestBuildMessage(t *testing.T) {
	t.Run("it should assemble a plaintext message with crlf separated headers", func(t *testing.T) {
		raw, err := buildMessage("someone@example.com", "Greetings", "hello there")
		if err != nil {
			t.Fatalf("failed to build message: %v", err)
		}
		decoded, err := base64.URLEncoding.DecodeString(raw)
		if err != nil {
			t.Fatalf("message should be padded base64url, got decode error: %v", err)
		}
		want := "To: someone@example.com\r\n" +
			"Subject: Greetings\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			"hello there"
		testboil.FailTestIfDiff(t, string(decoded), want)
	})

	t.Run("it should reject recipients which are not addresses", func(t *testing.T) {
		_, err := buildMessage("not-an-address", "s", "b")
		if err == nil {
			t.Fatal("expected error on malformed recipient")
		}
		if !strings.Contains(err.Error(), "invalid recipient address") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("it should accept display name addresses", func(t *testing.T) {
		_, err := buildMessage("Some One <someone@example.com>", "s", "b")
		if err != nil {
			t.Fatalf("expected display name form to pass, got: %v", err)
		}
	})
}
