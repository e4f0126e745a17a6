// Package runtime configures the Go runtime for long symbolic computations:
// the memory limit, profiling, and runtime metrics.
package runtime

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"github.com/dustin/go-humanize"
	"github.com/felixge/fgprof"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	log "github.com/symbolic-mc/graphsolve/internal/logging"
)

// minProfileDuration covers several fgprof sampling periods. Stopping a
// profile that has no sample yet fails inside fgprof.
const minProfileDuration = 50 * time.Millisecond

var stopProfile func() error

// RegisterFlags adds flags for configuring the runtime.
//
// The following flags are added:
// - "memory-limit-ratio"
// - "profile-output"
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Float64("memory-limit-ratio", 0, "set the Go memory limit to this fraction of the container or system memory (0 leaves it unchanged)")
	flags.String("profile-output", "", "write a wall-clock profile in the pprof format to this file")
}

// RunE returns a Cobra RunFunc that applies the memory limit and starts
// profiling.
//
// The required flags can be added to a command by using RegisterFlags().
func RunE() cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, args []string) error {
		if cobrautil.IsBuiltinCommand(cmd) {
			return nil // No-op for builtins
		}

		if ratio := cobrautil.MustGetFloat64(cmd, "memory-limit-ratio"); ratio > 0 {
			if ratio > 1 {
				return fmt.Errorf("memory limit ratio must be at most 1, got %v", ratio)
			}
			limit, err := memlimit.SetGoMemLimitWithOpts(
				memlimit.WithRatio(ratio),
				memlimit.WithProvider(memlimit.ApplyFallback(memlimit.FromCgroup, memlimit.FromSystem)),
			)
			if err != nil {
				return fmt.Errorf("unable to set memory limit: %w", err)
			}
			log.Debug().Str("limit", humanize.IBytes(uint64(max(limit, 0)))).Msg("set memory limit")
		}

		if path := cobrautil.MustGetString(cmd, "profile-output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			stopProfile = stopAndClose(fgprof.Start(f, fgprof.FormatPprof), f, time.Now())
		}
		return nil
	}
}

// PostRunE stops a profile started by RunE.
func PostRunE() cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, args []string) error {
		if stopProfile == nil {
			return nil
		}
		stop := stopProfile
		stopProfile = nil
		return stop()
	}
}

func stopAndClose(stop func() error, c io.Closer, started time.Time) func() error {
	return func() (err error) {
		if remaining := minProfileDuration - time.Since(started); remaining > 0 {
			time.Sleep(remaining)
		}

		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("unable to write profile: %v", r)
			}
			if closeErr := c.Close(); err == nil {
				err = closeErr
			}
		}()

		if err := stop(); err != nil {
			return fmt.Errorf("unable to write profile: %w", err)
		}
		return nil
	}
}
