package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/handsfree/pkg/catalog"
)

// Client spawns the tool host described by conf and exposes its stdio
// as a pair of channels. Messages sent on the input channel are encoded
// as newline-delimited JSON on the host's stdin; every line the host
// writes to stdout arrives on the output channel as a json.RawMessage.
// The output channel closes when the host exits. Closing the input
// channel, or cancelling ctx, closes the host's stdin which makes a
// well-behaved host exit.
func Client(ctx context.Context, conf catalog.Server) (chan<- any, <-chan any, error) {
	cmd := exec.CommandContext(ctx, conf.Command, conf.Args...)
	env, err := buildEnv(conf)
	if err != nil {
		return nil, nil, err
	}
	cmd.Env = env

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("start '%v': %w", conf.Command, err)
	}

	in := make(chan any)
	out := make(chan any)

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			if misc.Truthy(os.Getenv("HANDSFREE_DEBUG")) {
				ancli.Noticef("mcp_%v stderr: %v\n", conf.Name, scanner.Text())
			}
		}
	}()

	go func() {
		defer close(out)
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if !json.Valid(line) {
				continue
			}
			msg := make(json.RawMessage, len(line))
			copy(msg, line)
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			ancli.Warnf("mcp_%v exited: %v\n", conf.Name, err)
		}
	}()

	go func() {
		defer stdin.Close()
		enc := json.NewEncoder(stdin)
		for {
			select {
			case msg, ok := <-in:
				if !ok {
					return
				}
				if err := enc.Encode(msg); err != nil {
					ancli.Warnf("mcp_%v: failed to encode request: %v\n", conf.Name, err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return in, out, nil
}

// buildEnv merges the process environment, the server's env file and
// its explicit Env entries, in increasing priority.
func buildEnv(conf catalog.Server) ([]string, error) {
	env := os.Environ()
	fileEnv, err := loadEnvFile(conf.EnvFile)
	if err != nil {
		return nil, err
	}
	for k, v := range fileEnv {
		if _, explicit := conf.Env[k]; explicit {
			continue
		}
		env = append(env, fmt.Sprintf("%v=%v", k, v))
	}
	for k, v := range conf.Env {
		env = append(env, fmt.Sprintf("%v=%v", k, v))
	}
	return env, nil
}
