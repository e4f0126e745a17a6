package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/symbolic-mc/graphsolve/pkg/analysis"
)

// ReachConfig holds the flags of the reach command.
type ReachConfig struct {
	Models ModelConfig

	Target     []string
	Blocked    []string
	Domain     []string
	Minimize   bool
	AlmostSure bool
}

func RegisterReachFlags(cmd *cobra.Command, config *ReachConfig) {
	RegisterModelFlags(cmd, &config.Models)
	cmd.Flags().StringSliceVar(&config.Target, "target", nil, "states to reach")
	cmd.Flags().StringSliceVar(&config.Blocked, "blocked", nil, "states that must not be passed through")
	cmd.Flags().StringSliceVar(&config.Domain, "domain", nil, "restrict the query to these states")
	cmd.Flags().BoolVar(&config.Minimize, "minimize", false, "resolve the even player's choices against reaching the target")
	cmd.Flags().BoolVar(&config.AlmostSure, "almost-sure", false, "require reaching the target with probability one")
}

func (c *ReachConfig) request() analysis.ReachRequest {
	return analysis.ReachRequest{
		Target:     c.Target,
		Blocked:    c.Blocked,
		Domain:     c.Domain,
		Minimize:   c.Minimize,
		AlmostSure: c.AlmostSure,
	}
}

func NewReachCommand(programName string, config *ReachConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "reach",
		Short:   "compute the states reaching a target",
		Long:    "Computes the states of every model from which the target states are reached with positive probability, or with --almost-sure with probability one.",
		PreRunE: DefaultPreRunE(programName),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := config.request()
			results, err := run(cmd, &config.Models, func(ctx context.Context, a *analysis.Analyzer) ([]string, error) {
				return a.Reach(ctx, req)
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, result := range results {
				printModelHeading(w, result.Path, len(result.Value), "state")
				printStates(w, "reaching", evenColor, result.Value)
			}
			return nil
		},
	}
}
