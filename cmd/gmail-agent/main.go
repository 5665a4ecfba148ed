package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/handsfree/internal/utils"
	"github.com/baalimago/handsfree/pkg/agent"
	"github.com/baalimago/handsfree/pkg/catalog"
	"github.com/joho/godotenv"
)

const usage = `gmail-agent - have Gemini carry out an email send through the Gmail tool host

Prerequisites:
  - Set the GEMINI_API_KEY environment variable to your Gemini API key,
    or place it in a .env file in the working directory
  - Build gmail-server and have it on your PATH, or point -server at it

Flags:
`

func main() {
	ancli.SetupSlog()
	recipient := flag.String("recipient", "your_email@example.com", "address which should receive the test email")
	server := flag.String("server", "gmail-server", "command used to spawn the Gmail tool host")
	serverfile := flag.String("serverfile", "", "path to a json file describing the tool host, overrides -server")
	model := flag.String("model", "", "Gemini model to plan with, empty means the builtin default")
	timeout := flag.Duration("timeout", 2*time.Minute, "upper bound for the full run")
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
	if os.Getenv("GEMINI_API_KEY") == "" {
		ancli.PrintErr("GEMINI_API_KEY not found in environment variables or .env file\n")
		os.Exit(1)
	}

	instruction := fmt.Sprintf("Please send an email to %v with the subject 'MCP Agent Test' and the body 'This email was sent by the MCP Gmail agent.'", *recipient)

	srv := catalog.Server{Name: "gmail", Command: *server}
	if *serverfile != "" {
		err := utils.ReadAndUnmarshal(*serverfile, &srv)
		if err != nil {
			ancli.PrintErr(fmt.Sprintf("failed to load serverfile: %v\n", err))
			os.Exit(1)
		}
	}

	options := []agent.Option{
		agent.WithInstruction(instruction),
		agent.WithServer(srv),
		agent.WithTimeout(*timeout),
	}
	if *model != "" {
		options = append(options, agent.WithModel(*model))
	}
	a := agent.New(options...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := a.Setup(ctx)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		os.Exit(1)
	}
	go func() { shutdown.Monitor(cancel) }()
	_, err = a.Run(ctx)
	if err != nil {
		a.Close()
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		os.Exit(1)
	}
	a.Close()
	cancel()
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
}
