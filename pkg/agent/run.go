package agent

import (
	"context"
	"fmt"

	"github.com/baalimago/handsfree/pkg/catalog"
)

// systemPrompt frames every run. The catalog tells the model what can
// be done, the instruction what should be done.
const systemPrompt = "You are a hands-free automation agent. Carry out the user's " +
	"instruction by calling the provided tools. Emit one tool call per required " +
	"action, in the exact order the actions should happen. Never answer with prose."

// Run performs one planning round trip and executes the returned calls
// in order, each call completing before the next is issued. The first
// failing call halts the remainder. The transcript is returned even
// when the run errors, it records how far things got.
func (a *Agent) Run(ctx context.Context) (*Transcript, error) {
	if a.planner == nil || a.session == nil {
		return nil, fmt.Errorf("agent not set up, call Setup first")
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	t := newTranscript(a.out)
	t.add(KindInstruction, a.instruction)

	calls, err := a.planner.Plan(ctx, systemPrompt, a.instruction)
	if err != nil {
		t.add(KindCompletion, fmt.Sprintf("aborted: %v", err))
		return t, fmt.Errorf("planning failed: %w", err)
	}
	for _, call := range calls {
		t.add(KindDecision, call.PrettyPrint())
	}
	if err := a.validateCalls(calls); err != nil {
		t.add(KindCompletion, fmt.Sprintf("aborted: %v", err))
		return t, err
	}

	for i, call := range calls {
		t.add(KindInvocation, fmt.Sprintf("calling '%v' (%v/%v)", call.Name, i+1, len(calls)))
		var input catalog.Input
		if call.Inputs != nil {
			input = *call.Inputs
		}
		out, err := a.session.CallTool(ctx, call.Name, input)
		if err != nil {
			t.add(KindResult, fmt.Sprintf("'%v' failed: %v", call.Name, err))
			t.add(KindCompletion, fmt.Sprintf("halted after %v of %v calls", i+1, len(calls)))
			return t, fmt.Errorf("call '%v' failed: %w", call.Name, err)
		}
		t.add(KindResult, out)
	}
	t.add(KindCompletion, fmt.Sprintf("instruction carried out, %v call(s) succeeded", len(calls)))
	return t, nil
}

// validateCalls checks the planned calls against the advertised
// specifications before anything executes. A call the host never
// advertised, or arguments its schema rejects, fail the whole plan
// since there is no replanning round to recover in.
func (a *Agent) validateCalls(calls []catalog.Call) error {
	for _, call := range calls {
		spec, ok := a.specByName(call.Name)
		if !ok {
			return fmt.Errorf("model requested unknown operation '%v'", call.Name)
		}
		var input catalog.Input
		if call.Inputs != nil {
			input = *call.Inputs
		}
		if err := spec.ValidateArgs(input); err != nil {
			return fmt.Errorf("model arguments for '%v' rejected: %w", call.Name, err)
		}
	}
	return nil
}

func (a *Agent) specByName(name string) (catalog.Specification, bool) {
	for _, spec := range a.specs {
		if spec.Name == name {
			return spec, true
		}
	}
	return catalog.Specification{}, false
}
