// Command isridgeo converts search-and-rescue incident coordinates between
// decimal degrees, degrees-minutes-seconds and UTM.
//
// Usage:
//
//	isridgeo [flags] <command> [args]
//
// With no command, isridgeo reads one command per line from standard input
// and exits non-zero if any line failed. Results go to standard output and
// logs to standard error.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sarbayes/geodesy/internal/cli"
	"github.com/sarbayes/geodesy/internal/config"
	"github.com/sarbayes/geodesy/internal/logging"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("isridgeo", pflag.ContinueOnError)
	// negative coordinates after the command name are arguments, not flags
	fs.SetInterspersed(false)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: isridgeo [flags] <command> [args]\n\ncommands:\n%s\nflags:\n", cli.Usage())
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(fs)
	if err != nil {
		slog.New(slog.NewTextHandler(stderr, nil)).Error("failed to load config", "error", err)
		return 1
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, stderr)
	runner := cli.New(cfg, stdout, logger)

	if fs.NArg() == 0 {
		_, failed, err := runner.RunBatch(stdin)
		if err != nil {
			logger.Error("batch failed", "error", err)
			return 1
		}
		if failed > 0 {
			return 1
		}
		return 0
	}

	if err := runner.Run(fs.Args()); err != nil {
		logger.Error("conversion failed", "error", err)
		if errors.Is(err, cli.ErrUsage) {
			fs.Usage()
			return 2
		}
		return 1
	}
	return 0
}
