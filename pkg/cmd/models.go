package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/symbolic-mc/graphsolve/pkg/analysis"
	"github.com/symbolic-mc/graphsolve/pkg/bdd"
	"github.com/symbolic-mc/graphsolve/pkg/genutil/slicez"
)

// ModelConfig selects the model files a command runs against.
type ModelConfig struct {
	Paths       []string
	Concurrency int
	Progress    bool

	NodeSize  int
	CacheSize int
}

func RegisterModelFlags(cmd *cobra.Command, config *ModelConfig) {
	cmd.Flags().StringSliceVar(&config.Paths, "model", nil, "model yaml files to analyze")
	cmd.Flags().IntVar(&config.Concurrency, "concurrency", 4, "maximum number of models analyzed at once")
	cmd.Flags().BoolVar(&config.Progress, "progress", isatty.IsTerminal(os.Stderr.Fd()), "show a progress bar while analyzing models")
	cmd.Flags().IntVar(&config.NodeSize, "bdd-node-size", 10000, "initial number of decision diagram nodes allocated per model")
	cmd.Flags().IntVar(&config.CacheSize, "bdd-cache-size", 5000, "initial size of the decision diagram operation caches")
}

func (c *ModelConfig) bddOptions() []bdd.ConfigOption {
	return []bdd.ConfigOption{
		bdd.WithNodeSize(c.NodeSize),
		bdd.WithCacheSize(c.CacheSize),
	}
}

// run runs query against every configured model.
func run[T any](cmd *cobra.Command, c *ModelConfig, query analysis.Query[T]) ([]analysis.Result[T], error) {
	if len(c.Paths) == 0 {
		return nil, errors.New("at least one --model is required")
	}
	if dups := slicez.Duplicates(c.Paths); len(dups) > 0 {
		return nil, fmt.Errorf("model file %s given more than once", dups[0])
	}

	if c.Progress {
		bar := progressbar.NewOptions(len(c.Paths),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("analyzing models"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer func() { _ = bar.Finish() }()

		inner := query
		query = func(ctx context.Context, a *analysis.Analyzer) (T, error) {
			value, err := inner(ctx, a)
			if err == nil {
				_ = bar.Add(1)
			}
			return value, err
		}
	}

	return analysis.RunAll(cmd.Context(), c.Paths, c.Concurrency, query, c.bddOptions()...)
}
