package keynote

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const scriptTimeout = 15 * time.Second

// launchSettle gives Keynote time to start before it gets scripted.
var launchSettle = 2 * time.Second

// runScript executes one AppleScript snippet. Swappable so that tests
// can run without a scripting bridge.
var runScript = runOsascript

// openApp launches a macOS application by name. Swappable for tests.
var openApp = openByName

func runOsascript(script string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("applescript timed out after %v", scriptTimeout)
	}
	if err != nil {
		return "", fmt.Errorf("failed to run osascript: %w, output: %v", err, string(output))
	}
	return strings.TrimSpace(string(output)), nil
}

func openByName(app string) error {
	output, err := exec.Command("open", "-a", app).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to open %v: %w, output: %v", app, err, string(output))
	}
	return nil
}
