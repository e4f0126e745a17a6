package cmd

import (
	"github.com/jzelinskie/cobrautil/v2/cobraotel"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/spf13/cobra"

	"github.com/symbolic-mc/graphsolve/pkg/runtime"
)

// RootConfig holds the flags shared by every command.
type RootConfig struct {
	MetricsFile string
}

func RegisterRootFlags(cmd *cobra.Command, config *RootConfig) {
	cobrazerolog.New().RegisterFlags(cmd.PersistentFlags())
	cobraotel.New(cmd.Use).RegisterFlags(cmd.PersistentFlags())
	runtime.RegisterFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().StringVar(&config.MetricsFile, "metrics-file", "", "write the engine metrics in the Prometheus text format to this file once the command finished")
}

func NewRootCommand(programName string, config *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:           programName,
		Short:         "Symbolic graph decomposition and parity game solving",
		Long:          "Decomposes explicit models into strongly connected and maximal end components, solves qualitative parity games on them and answers reachability queries, using binary decision diagrams.",
		Example:       Example(programName),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if err := runtime.PostRunE()(cmd, args); err != nil {
				return err
			}
			if config.MetricsFile == "" {
				return nil
			}
			return WriteMetrics(config.MetricsFile)
		},
	}
}

// BuildRootCommand returns the root command with every subcommand and flag
// registered.
func BuildRootCommand(programName string) *cobra.Command {
	rootConfig := &RootConfig{}
	rootCmd := NewRootCommand(programName, rootConfig)
	RegisterRootFlags(rootCmd, rootConfig)

	componentsConfig := &ComponentsConfig{}
	componentsCmd := NewComponentsCommand(rootCmd.Use, componentsConfig)
	RegisterComponentsFlags(componentsCmd, componentsConfig)
	rootCmd.AddCommand(componentsCmd)

	gameConfig := &GameConfig{}
	gameCmd := NewGameCommand(rootCmd.Use, gameConfig)
	RegisterGameFlags(gameCmd, gameConfig)
	rootCmd.AddCommand(gameCmd)

	reachConfig := &ReachConfig{}
	reachCmd := NewReachCommand(rootCmd.Use, reachConfig)
	RegisterReachFlags(reachCmd, reachConfig)
	rootCmd.AddCommand(reachCmd)

	rootCmd.AddCommand(NewManCommand())

	return rootCmd
}
