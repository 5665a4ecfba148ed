package main

import (
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/handsfree/internal/hostkit"
	"github.com/baalimago/handsfree/internal/keynote"
)

const version = "0.1.0"

func main() {
	ancli.SetupSlog()
	reg := hostkit.NewRegistry()
	keynote.Register(reg)
	err := hostkit.Serve(hostkit.NewServer("KeynoteController", version, reg))
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("server error: %v\n", err))
		os.Exit(1)
	}
}
