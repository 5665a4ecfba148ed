package mcp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// loadEnvFile reads the env file at path into a map. An empty path is
// not an error, it simply yields no variables.
func loadEnvFile(path string) (map[string]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	resolved, err := expandUserPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read envfile '%v': %w", resolved, err)
	}
	env, err := parseEnvFileContent(string(data))
	if err != nil {
		return nil, fmt.Errorf("envfile '%v': %w", resolved, err)
	}
	return env, nil
}

func expandUserPath(p string) (string, error) {
	rest, found := strings.CutPrefix(p, "~")
	if !found {
		return p, nil
	}
	if rest != "" && rest[0] != '/' {
		// ~user form, leave untouched
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, rest), nil
}

// parseEnvFileContent reads KEY=VALUE lines. Blank lines and #-comments
// are skipped, an 'export ' prefix is tolerated and matched surrounding
// quotes are stripped from values.
func parseEnvFileContent(content string) (map[string]string, error) {
	env := make(map[string]string)
	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, found := strings.CutPrefix(line, "export "); found {
			line = strings.TrimSpace(rest)
		}
		key, val, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("line %v: expected KEY=VALUE, got: '%v'", i+1, line)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %v: missing key before '='", i+1)
		}
		env[key] = stripQuotes(strings.TrimSpace(val))
	}
	return env, nil
}

func stripQuotes(val string) string {
	if len(val) < 2 {
		return val
	}
	first, last := val[0], val[len(val)-1]
	if first != last {
		return val
	}
	if first == '"' || first == '\'' {
		return val[1 : len(val)-1]
	}
	return val
}
