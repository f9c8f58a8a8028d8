package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gradeflow/gradeflow/internal/config"
	"github.com/gradeflow/gradeflow/internal/logging"
)

var CLI struct {
	Version kong.VersionFlag

	Compute ComputeCmd `cmd:"" help:"Compute grade reports from CSV inputs."`
	Serve   ServeCmd   `cmd:"" help:"Serve stored grade reports over HTTP."`
}

type appContext struct {
	cfg config.Config
	log *slog.Logger
}

func main() {
	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("gradeflow"),
		kong.Description("Policy-aware course grade computation"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.4.0"},
	)

	if err := ctx.Run(&appContext{cfg: cfg, log: logger}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
