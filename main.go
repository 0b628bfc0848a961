package main

import (
	"log/slog"
	"os"

	"picgrade/apply"
	"picgrade/inspect"
	"picgrade/parallel"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers int            `help:"Number of pictures graded in parallel, 0 for one per CPU" default:"0"`
	Verbose bool           `short:"v" help:"Log debug messages"`
	Apply   apply.CLICmd   `cmd:"" help:"Grade every picture in a folder"`
	Lut     inspect.CLICmd `cmd:"" help:"Decode .cube LUT files and report on them"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("picgrade"),
		kong.Description("Non-destructive colour grading for folders of pictures."),
		kong.UsageOnError(),
	)

	if c.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	pool := parallel.Start(c.Workers)
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Size())

	err := kctx.Run(pool.Do, pool.Wait)
	pool.Cancel()
	if err != nil {
		slog.Error("failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
