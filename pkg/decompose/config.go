package decompose

import (
	"fmt"
	"strings"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.options.go . Config

// Mode selects which kind of component is produced.
type Mode int

const (
	// ModeSCC produces strongly connected components.
	ModeSCC Mode = iota

	// ModeMEC produces maximal end components: strongly connected sets in
	// which every retained choice keeps all of its outcomes inside.
	ModeMEC
)

func (m Mode) String() string {
	if m == ModeMEC {
		return "mec"
	}
	return "scc"
}

// ParseMode parses "scc" or "mec".
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "scc":
		return ModeSCC, nil
	case "mec":
		return ModeMEC, nil
	default:
		return 0, fmt.Errorf("unknown decomposition mode %q", name)
	}
}

// Config configures a component Iterator.
type Config struct {
	Mode Mode `debugmap:"visible"`

	// UseFwdIntersectU selects FwdIntersectKernel when Kernel is unset.
	UseFwdIntersectU bool `debugmap:"visible"`

	// SkipTransient suppresses components without a cycle.
	SkipTransient bool `debugmap:"visible"`

	// BottomOnly suppresses components with an edge leaving them.
	BottomOnly bool `debugmap:"visible"`

	Kernel KernelStrategy `debugmap:"visible"`
}

func (c *Config) kernel() KernelStrategy {
	switch {
	case c.Kernel != nil:
		return c.Kernel
	case c.UseFwdIntersectU:
		return FwdIntersectKernel{}
	default:
		return SeedKernel{}
	}
}
