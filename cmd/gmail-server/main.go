package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/handsfree/internal/gmail"
	"github.com/baalimago/handsfree/internal/hostkit"
	"github.com/joho/godotenv"
)

const version = "0.1.0"

const usage = `gmail-server - Gmail tool host speaking MCP over stdio

Prerequisites:
  - Download OAuth 2.0 Desktop Client credentials from Google Cloud Console
    and save them as credentials.json (or point -credentials at them)
  - The first run opens a browser asking for consent, the granted token
    is cached and reused on subsequent runs

Flags:
`

func main() {
	ancli.SetupSlog()
	credentials := flag.String("credentials", gmail.DefaultAuth.CredentialsPath, "path to the OAuth client secrets file")
	token := flag.String("token", gmail.DefaultAuth.TokenPath, "path where the authorized token is cached")
	scopes := flag.String("scopes", "send", "comma separated Gmail scopes, valid values: send, readonly, modify")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			ancli.Warnf("failed to load .env: %v\n", err)
		}
	}

	conf := gmail.AuthConfig{
		CredentialsPath: *credentials,
		TokenPath:       *token,
	}
	parsed, err := parseScopes(*scopes)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to parse scopes: %v\n", err))
		os.Exit(1)
	}
	conf.Scopes = parsed

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// The consent flow may block on the browser, allow interrupts to
	// tear it down cleanly
	go func() { shutdown.Monitor(cancel) }()

	svc, err := gmail.NewService(ctx, conf)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to create gmail service: %v\n", err))
		os.Exit(1)
	}

	reg := hostkit.NewRegistry()
	gmail.Register(reg, gmail.NewClient(svc), conf.Scopes)
	err = hostkit.Serve(hostkit.NewServer("GmailSenderAgent", version, reg))
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("server error: %v\n", err))
		os.Exit(1)
	}
}

func parseScopes(s string) ([]string, error) {
	var scopes []string
	for _, part := range strings.Split(s, ",") {
		switch strings.TrimSpace(part) {
		case "send":
			scopes = append(scopes, gmail.ScopeSend)
		case "readonly":
			scopes = append(scopes, gmail.ScopeReadonly)
		case "modify":
			scopes = append(scopes, gmail.ScopeModify)
		case "":
		default:
			return nil, fmt.Errorf("unknown scope: '%v', valid scopes are: send, readonly, modify", strings.TrimSpace(part))
		}
	}
	if len(scopes) == 0 {
		return nil, fmt.Errorf("at least one scope is required")
	}
	return scopes, nil
}
