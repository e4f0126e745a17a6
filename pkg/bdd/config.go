package bdd

//go:generate go run github.com/ecordell/optgen -output zz_generated.options.go . Config

// Config tunes the decision diagram backend. Sizes are initial sizes; the
// backend grows its tables on demand.
type Config struct {
	NodeSize   int `debugmap:"visible" default:"10000"`
	CacheSize  int `debugmap:"visible" default:"5000"`
	CacheRatio int `debugmap:"visible"`
}
