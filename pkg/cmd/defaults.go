package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/go-logr/zerologr"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobraotel"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"

	"github.com/symbolic-mc/graphsolve/internal/logging"
	"github.com/symbolic-mc/graphsolve/pkg/runtime"
)

// Example creates an example usage string with the provided program name.
func Example(programName string) string {
	return fmt.Sprintf(`	%[1]s:
		%[4]s components --model model.yaml --mode mec

	%[2]s:
		%[4]s game --model model.yaml --nature forall --strict-even=false

	%[3]s:
		%[4]s reach --model model.yaml --target goal --blocked trap --almost-sure
`,
		color.YellowString("Maximal end components"),
		color.GreenString("Parity game with hostile nature"),
		color.CyanString("Almost-sure reachability"),
		programName,
	)
}

// DefaultPreRunE sets up viper, zerolog, OpenTelemetry, and runtime flag
// handling for a command.
func DefaultPreRunE(programName string) cobrautil.CobraRunFunc {
	return cobrautil.CommandStack(
		cobrautil.SyncViperDotEnvPreRunE(programName, programName+".env", zerologr.New(&logging.Logger)),
		cobrazerolog.New(
			cobrazerolog.WithTarget(func(logger zerolog.Logger) {
				logging.SetGlobalLogger(logger)
			}),
		).RunE(),
		cobraotel.New(programName,
			cobraotel.WithLogger(zerologr.New(&logging.Logger)),
		).RunE(),
		runtime.RunE(),
	)
}

// WriteMetrics writes every registered metric to path in the Prometheus text
// format.
func WriteMetrics(path string) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("unable to gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(f, family); err != nil {
			return fmt.Errorf("unable to write metrics to %s: %w", path, err)
		}
	}
	return f.Close()
}
