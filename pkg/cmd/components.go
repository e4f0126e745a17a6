package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/symbolic-mc/graphsolve/pkg/analysis"
	"github.com/symbolic-mc/graphsolve/pkg/decompose"
)

// ComponentsConfig holds the flags of the components command.
type ComponentsConfig struct {
	Models ModelConfig

	Mode             string
	UseFwdIntersectU bool
	SkipTransient    bool
	BottomOnly       bool
}

func RegisterComponentsFlags(cmd *cobra.Command, config *ComponentsConfig) {
	RegisterModelFlags(cmd, &config.Models)
	cmd.Flags().StringVar(&config.Mode, "mode", decompose.ModeSCC.String(), `kind of component to produce ("scc", "mec")`)
	cmd.Flags().BoolVar(&config.UseFwdIntersectU, "use-fwd-intersect-u", false, "stop skeleton spines early at the part of the previous spine inside the forward set")
	cmd.Flags().BoolVar(&config.SkipTransient, "skip-transient", false, "omit components without a cycle")
	cmd.Flags().BoolVar(&config.BottomOnly, "bottom-only", false, "omit components with an edge leaving them")
}

// Complete validates the flags and returns the decomposition options.
func (c *ComponentsConfig) Complete() ([]decompose.ConfigOption, error) {
	mode, err := decompose.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	return []decompose.ConfigOption{
		decompose.WithMode(mode),
		decompose.WithUseFwdIntersectU(c.UseFwdIntersectU),
		decompose.WithSkipTransient(c.SkipTransient),
		decompose.WithBottomOnly(c.BottomOnly),
	}, nil
}

func NewComponentsCommand(programName string, config *ComponentsConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "components",
		Short:   "decompose models into components",
		Long:    "Decomposes every model into its strongly connected components, or with --mode mec into its maximal end components.",
		PreRunE: DefaultPreRunE(programName),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.Complete()
			if err != nil {
				return err
			}

			results, err := run(cmd, &config.Models, func(ctx context.Context, a *analysis.Analyzer) ([][]string, error) {
				return a.Components(ctx, opts...)
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, result := range results {
				printModelHeading(w, result.Path, len(result.Value), "component")
				for i, component := range result.Value {
					printStates(w, fmt.Sprintf("#%d", i+1), evenColor, component)
				}
			}
			return nil
		},
	}
}
