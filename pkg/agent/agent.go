package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/baalimago/handsfree/internal/gemini"
	"github.com/baalimago/handsfree/internal/mcp"
	"github.com/baalimago/handsfree/pkg/catalog"
)

// planner turns one instruction into an ordered list of operation
// calls, using the registered tool specifications.
type planner interface {
	RegisterTool(spec catalog.Specification)
	Plan(ctx context.Context, systemPrompt, instruction string) ([]catalog.Call, error)
}

// session is a live connection to one spawned tool host.
type session interface {
	Initialize(ctx context.Context) error
	ListTools(ctx context.Context) ([]catalog.Specification, error)
	CallTool(ctx context.Context, name string, input catalog.Input) (string, error)
	Close()
}

type Agent struct {
	model       string
	instruction string
	server      catalog.Server
	timeout     time.Duration

	plannerCreator func(model string) (planner, error)
	sessionCreator func(ctx context.Context, conf catalog.Server) (session, error)

	out io.Writer

	planner planner
	session session
	specs   []catalog.Specification
}

var defaultConf = Agent{
	model:          gemini.Default.Model,
	timeout:        2 * time.Minute,
	out:            os.Stdout,
	plannerCreator: newGeminiPlanner,
	sessionCreator: newHostSession,
}

type Option func(*Agent)

func New(options ...Option) Agent {
	conf := defaultConf
	for _, o := range options {
		o(&conf)
	}
	return conf
}

func WithModel(model string) Option {
	return func(a *Agent) {
		a.model = model
	}
}

func WithInstruction(instruction string) Option {
	return func(a *Agent) {
		a.instruction = instruction
	}
}

func WithServer(server catalog.Server) Option {
	return func(a *Agent) {
		a.server = server
	}
}

func WithOutputTo(out io.Writer) Option {
	return func(a *Agent) {
		a.out = out
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(a *Agent) {
		a.timeout = timeout
	}
}

func newGeminiPlanner(model string) (planner, error) {
	p := gemini.Default
	p.Model = model
	if err := p.Setup(); err != nil {
		return nil, err
	}
	return &p, nil
}

func newHostSession(ctx context.Context, conf catalog.Server) (session, error) {
	sess, err := mcp.NewSession(ctx, conf)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Setup spawns the tool host, performs the MCP handshake and registers
// the host's advertised operations on the planner. After Setup the
// agent is ready for exactly as many Runs as the caller wants, each one
// being a single planning round trip.
func (a *Agent) Setup(ctx context.Context) error {
	if a.instruction == "" {
		return fmt.Errorf("no instruction configured, use WithInstruction")
	}
	if a.server.Command == "" {
		return fmt.Errorf("no tool host configured, use WithServer")
	}
	sess, err := a.sessionCreator(ctx, a.server)
	if err != nil {
		return fmt.Errorf("failed to spawn tool host '%v': %w", a.server.Name, err)
	}
	a.session = sess
	if err := a.session.Initialize(ctx); err != nil {
		return err
	}
	specs, err := a.session.ListTools(ctx)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return fmt.Errorf("tool host '%v' advertises no operations", a.server.Name)
	}
	a.specs = specs
	p, err := a.plannerCreator(a.model)
	if err != nil {
		return fmt.Errorf("failed to create planner: %w", err)
	}
	a.planner = p
	for _, spec := range specs {
		a.planner.RegisterTool(spec)
	}
	return nil
}

// Close shuts down the tool host connection.
func (a *Agent) Close() {
	if a.session != nil {
		a.session.Close()
	}
}
