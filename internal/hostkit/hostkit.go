// Package hostkit holds the scaffolding every tool host shares: a
// registry of operations and the bridge which mounts them on an MCP
// stdio server. Tool implementations stay free of transport concerns,
// they only see catalog types.
package hostkit

import (
	"os"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/handsfree/pkg/catalog"
)

// Tool is one hostable operation: an advertised specification plus the
// function carrying out its single side effect.
type Tool interface {
	// Call the tool with the given Input. Returns output from the
	// tool or an error if the call returned an error-like.
	Call(catalog.Input) (string, error)

	// Specification describing the operation, advertised via
	// tools/list.
	Specification() catalog.Specification
}

// Registry is a threadsafe storage for Tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
	debug bool
}

// NewRegistry returns an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool), debug: misc.Truthy(os.Getenv("DEBUG"))}
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Register the tool under its specification name. Registration order
// is kept so that hosts advertise operations deterministically.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := t.Specification().Name
	if r.debug {
		ancli.Okf("adding tool to registry, name: %v\n", name)
	}
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// All returns the registered tools in registration order.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.tools[name])
	}
	return all
}

// Reset removes all registered tools. Primarily used for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.tools = make(map[string]Tool)
	r.order = nil
	r.mu.Unlock()
}
