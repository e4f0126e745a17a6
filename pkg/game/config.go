package game

import "github.com/symbolic-mc/graphsolve/pkg/symbolic"

//go:generate go run github.com/ecordell/optgen -output zz_generated.options.go . Config

// Config configures a Solver.
type Config struct {
	// StrictEven grows the region won by the opponent of the minimal
	// priority with the plain attractor. When unset the weak attractor is
	// used, which only keeps nodes from which the region is reached with
	// probability one.
	StrictEven bool `debugmap:"visible" default:"true"`

	// Nature is the polarity of stochastic nodes in the even player's
	// attractors. The odd player's attractors use its dual.
	Nature symbolic.Polarity `debugmap:"visible"`
}

func (c *Config) nature(p symbolic.Player) symbolic.Polarity {
	if p == symbolic.Even {
		return c.Nature
	}
	return c.Nature.Dual()
}
