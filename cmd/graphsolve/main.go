package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/sean-/sysexits"

	"github.com/symbolic-mc/graphsolve/pkg/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.BuildRootCommand("graphsolve")
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", err)
		stop()
		os.Exit(exitCode(ctx, err))
	}
}

func exitCode(ctx context.Context, err error) int {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return sysexits.NoInput
	case ctx.Err() != nil:
		return sysexits.TempFail
	default:
		return sysexits.Software
	}
}
