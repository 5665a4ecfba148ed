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

const usage = `keynote-agent - have Gemini drive Apple Keynote through the Keynote tool host

Prerequisites:
  - Set the GEMINI_API_KEY environment variable to your Gemini API key,
    or place it in a .env file in the working directory
  - Build keynote-server and have it on your PATH, or point -server at it
  - macOS with Keynote installed, the host drives it over AppleScript

Flags:
`

const instruction = "Please open Keynote, create a blank slide, draw a rectangle from (100, 100) with width 400 and height 250, and then add the text 'Agent Control Test' inside the rectangle at position (120, 130) with width 360 and height 50."

func main() {
	ancli.SetupSlog()
	server := flag.String("server", "keynote-server", "command used to spawn the Keynote tool host")
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

	srv := catalog.Server{Name: "keynote", Command: *server}
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
