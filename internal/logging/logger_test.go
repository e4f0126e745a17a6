package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetGlobalLogger(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { SetGlobalLogger(previous) })

	var buf bytes.Buffer
	SetGlobalLogger(zerolog.New(&buf))

	Debug().Str("mode", "scc").Msg("decomposing")
	require.Contains(t, buf.String(), `"mode":"scc"`)
	require.Contains(t, buf.String(), `"message":"decomposing"`)

	buf.Reset()
	Ctx(context.Background()).Info().Msg("from context")
	require.Contains(t, buf.String(), "from context")
}

func TestComponent(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { SetGlobalLogger(previous) })

	var buf bytes.Buffer
	SetGlobalLogger(zerolog.New(&buf))

	logger := Component("attractor")
	logger.Info().Int("iterations", 3).Send()
	require.Contains(t, buf.String(), `"component":"attractor"`)
	require.Contains(t, buf.String(), `"iterations":3`)
}

func TestNopByDefault(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { SetGlobalLogger(previous) })

	SetGlobalLogger(zerolog.Nop())
	require.Equal(t, zerolog.Disabled, Logger.GetLevel())
}
