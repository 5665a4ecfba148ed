package agent

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindInstruction Kind = "instruction"
	KindDecision    Kind = "decision"
	KindInvocation  Kind = "invocation"
	KindResult      Kind = "result"
	KindCompletion  Kind = "completion"
)

const stampFormat = "15:04:05.000"

// Entry is one timestamped transcript line.
type Entry struct {
	Time time.Time `json:"time"`
	Kind Kind      `json:"kind"`
	Text string    `json:"text"`
}

// Transcript is the ordered record of one run: the instruction, the
// model's decisions, every invocation with its result and the final
// completion note. Entries are appended as they happen and mirrored to
// the configured output writer.
type Transcript struct {
	RunID   uuid.UUID `json:"run_id"`
	Started time.Time `json:"started"`
	Entries []Entry   `json:"entries"`

	out io.Writer
}

func newTranscript(out io.Writer) *Transcript {
	t := &Transcript{
		RunID:   uuid.New(),
		Started: time.Now(),
		out:     out,
	}
	if t.out != nil {
		fmt.Fprintf(t.out, "run %v, started %v\n", t.RunID, t.Started.Format(time.RFC3339))
	}
	return t
}

func (t *Transcript) add(kind Kind, text string) {
	e := Entry{Time: time.Now(), Kind: kind, Text: text}
	t.Entries = append(t.Entries, e)
	if t.out != nil {
		fmt.Fprintf(t.out, "[%v] %v: %v\n", e.Time.Format(stampFormat), e.Kind, e.Text)
	}
}

// Render the full transcript as one printable block.
func (t *Transcript) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %v, started %v\n", t.RunID, t.Started.Format(time.RFC3339))
	for _, e := range t.Entries {
		fmt.Fprintf(&b, "[%v] %v: %v\n", e.Time.Format(stampFormat), e.Kind, e.Text)
	}
	return b.String()
}
