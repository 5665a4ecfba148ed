package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/handsfree/pkg/catalog"
)

const protocolVersion = "2025-06-18"

// Session is a synchronous view of one spawned tool host. Exactly one
// request is in flight at a time; responses are correlated by ID so
// that stray notifications from the host are skipped.
type Session struct {
	serverName string
	in         chan<- any
	out        <-chan any

	mu        sync.Mutex
	seq       int
	closeOnce sync.Once
}

// NewSession spawns the tool host described by conf and wraps its
// channels. Initialize must be called before any other method.
func NewSession(ctx context.Context, conf catalog.Server) (*Session, error) {
	in, out, err := Client(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Session{serverName: conf.Name, in: in, out: out}, nil
}

func (s *Session) nextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Initialize performs the MCP handshake and announces the client as
// initialized.
func (s *Session) Initialize(ctx context.Context) error {
	id := s.nextID()
	req := Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  "initialize",
		Params: map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{},
			"clientInfo": map[string]any{
				"name":    "handsfree",
				"version": "0",
			},
		},
	}
	if _, err := s.roundTrip(ctx, req); err != nil {
		return fmt.Errorf("initialize '%v': %w", s.serverName, err)
	}
	return s.send(ctx, Request{JSONRPC: "2.0", Method: "notifications/initialized"})
}

// ListTools fetches the host's advertised operations as catalog
// specifications.
func (s *Session) ListTools(ctx context.Context) ([]catalog.Specification, error) {
	id := s.nextID()
	req := Request{JSONRPC: "2.0", ID: id, Method: "tools/list"}
	result, err := s.roundTrip(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tools/list '%v': %w", s.serverName, err)
	}
	var list toolListResult
	if err := json.Unmarshal(result, &list); err != nil {
		return nil, fmt.Errorf("decode tools/list result: %w", err)
	}
	specs := make([]catalog.Specification, 0, len(list.Tools))
	for _, t := range list.Tools {
		props := make(map[string]catalog.ParameterObject, len(t.InputSchema.Properties))
		for name, p := range t.InputSchema.Properties {
			props[name] = catalog.ParameterObject{
				Type:        p.Type,
				Description: p.Description,
				Enum:        p.Enum,
			}
		}
		schema := &catalog.InputSchema{
			Type:       t.InputSchema.Type,
			Required:   t.InputSchema.Required,
			Properties: props,
		}
		schema.Patch()
		specs = append(specs, catalog.Specification{
			Name:        t.Name,
			Description: t.Description,
			Inputs:      schema,
		})
	}
	return specs, nil
}

// CallTool invokes one operation and returns the joined text of the
// result's content blocks. A result flagged isError comes back as a Go
// error carrying that text.
func (s *Session) CallTool(ctx context.Context, name string, input catalog.Input) (string, error) {
	nonNullableInp := make(map[string]any)
	if len(input) != 0 {
		nonNullableInp = input
	}
	id := s.nextID()
	req := Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  "tools/call",
		Params: map[string]any{
			"name":      name,
			"arguments": nonNullableInp,
		},
	}
	if misc.Truthy(os.Getenv("HANDSFREE_DEBUG")) {
		ancli.Noticef("CallTool req: %v", debug.IndentedJsonFmt(req))
	}
	result, err := s.roundTrip(ctx, req)
	if err != nil {
		return "", err
	}
	var res callResult
	if err := json.Unmarshal(result, &res); err != nil {
		return "", fmt.Errorf("decode result: %w", err)
	}
	var buf bytes.Buffer
	for _, c := range res.Content {
		if c.Type == "text" {
			buf.WriteString(c.Text)
		}
	}
	if res.IsError {
		return "", errors.New(buf.String())
	}
	return buf.String(), nil
}

// Close shuts the host's stdin, asking it to exit.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.in)
	})
}

func (s *Session) send(ctx context.Context, req Request) error {
	select {
	case s.in <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// roundTrip sends req and blocks until the response with a matching ID
// arrives. Messages with other IDs, notifications included, are
// skipped.
func (s *Session) roundTrip(ctx context.Context, req Request) (json.RawMessage, error) {
	if err := s.send(ctx, req); err != nil {
		return nil, err
	}
	for {
		select {
		case msg, ok := <-s.out:
			if !ok {
				return nil, fmt.Errorf("connection to '%v' closed", s.serverName)
			}
			raw, ok := msg.(json.RawMessage)
			if !ok {
				if err, ok := msg.(error); ok {
					return nil, err
				}
				continue
			}
			var resp Response
			if err := json.Unmarshal(raw, &resp); err != nil {
				continue
			}
			if resp.ID != req.ID {
				continue
			}
			if resp.Error != nil {
				return nil, errors.New(resp.Error.Message)
			}
			return resp.Result, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
