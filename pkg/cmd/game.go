package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/symbolic-mc/graphsolve/pkg/analysis"
	"github.com/symbolic-mc/graphsolve/pkg/game"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

// GameConfig holds the flags of the game command.
type GameConfig struct {
	Models ModelConfig

	StrictEven bool
	Nature     string
}

func RegisterGameFlags(cmd *cobra.Command, config *GameConfig) {
	RegisterModelFlags(cmd, &config.Models)
	cmd.Flags().BoolVar(&config.StrictEven, "strict-even", true, "grow the opponent's region with the plain attractor instead of the weak one")
	cmd.Flags().StringVar(&config.Nature, "nature", symbolic.Exists.String(), `how stochastic nodes treat the even player ("exists", "forall")`)
}

// Complete validates the flags and returns the solver options.
func (c *GameConfig) Complete() ([]game.ConfigOption, error) {
	nature, err := symbolic.ParsePolarity(c.Nature)
	if err != nil {
		return nil, err
	}
	return []game.ConfigOption{
		game.WithStrictEven(c.StrictEven),
		game.WithNature(nature),
	}, nil
}

func NewGameCommand(programName string, config *GameConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "game",
		Short:   "solve the parity game of models",
		Long:    "Solves the qualitative parity game given by the state owners and priorities of every model. The even player wins a play when the least priority seen infinitely often is even.",
		PreRunE: DefaultPreRunE(programName),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.Complete()
			if err != nil {
				return err
			}

			results, err := run(cmd, &config.Models, func(ctx context.Context, a *analysis.Analyzer) (analysis.GameResult, error) {
				return a.SolveGame(ctx, opts...)
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, result := range results {
				printModelHeading(w, result.Path, 2, "region")
				printStates(w, "even", evenColor, result.Value.Even)
				printStates(w, "odd", oddColor, result.Value.Odd)
			}
			return nil
		},
	}
}
