package analysis_test

import (
	"bytes"
	"context"
	"io/fs"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"

	log "github.com/symbolic-mc/graphsolve/internal/logging"
	"github.com/symbolic-mc/graphsolve/pkg/analysis"
	"github.com/symbolic-mc/graphsolve/pkg/decompose"
	"github.com/symbolic-mc/graphsolve/pkg/game"
	"github.com/symbolic-mc/graphsolve/pkg/symbolic"
)

const (
	cycleModel = "../model/testdata/cycle.yaml"
	mdpModel   = "../model/testdata/mdp.yaml"
)

var spanRecorder = tracetest.NewSpanRecorder()

func TestMain(m *testing.M) {
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder)))
	goleak.VerifyTestMain(m)
}

func endedSpan(t *testing.T, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	spans := spanRecorder.Ended()
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].Name() == name {
			return spans[i]
		}
	}
	require.FailNow(t, "no ended span", name)
	return nil
}

func open(t *testing.T, path string) *analysis.Analyzer {
	t.Helper()
	a, err := analysis.Open(path)
	require.NoError(t, err)
	return a
}

func TestComponents(t *testing.T) {
	tcs := []struct {
		name     string
		path     string
		opts     []decompose.ConfigOption
		expected [][]string
	}{
		{"cycle", cycleModel, nil, [][]string{{"a", "b"}}},
		{"mdp scc", mdpModel, nil, [][]string{{"s", "t", "u"}, {"sink"}}},
		{"mdp mec", mdpModel, []decompose.ConfigOption{decompose.WithMode(decompose.ModeMEC)}, [][]string{{"s", "t", "u"}, {"sink"}}},
		{"mdp bottom", mdpModel, []decompose.ConfigOption{decompose.WithBottomOnly(true)}, [][]string{{"sink"}}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			components, err := open(t, tc.path).Components(t.Context(), tc.opts...)
			require.NoError(t, err)
			require.ElementsMatch(t, tc.expected, components)
		})
	}
}

func TestComponentsSpan(t *testing.T) {
	_, err := open(t, mdpModel).Components(t.Context(), decompose.WithMode(decompose.ModeMEC))
	require.NoError(t, err)

	span := endedSpan(t, "Components")
	require.Contains(t, span.Attributes(), attribute.String("mode", decompose.ModeMEC.String()))
	require.Contains(t, span.Attributes(), attribute.Int("components", 2))
}

func TestComponentsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := open(t, mdpModel).Components(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolveGame(t *testing.T) {
	result, err := open(t, cycleModel).SolveGame(t.Context())
	require.NoError(t, err)
	require.Empty(t, result.Even)
	require.Equal(t, []string{"a", "b"}, result.Odd)

	result, err = open(t, mdpModel).SolveGame(t.Context(), game.WithNature(symbolic.Forall), game.WithStrictEven(false))
	require.NoError(t, err)
	require.Equal(t, []string{"s", "t", "u", "sink"}, result.Even)
	require.Empty(t, result.Odd)

	span := endedSpan(t, "SolveGame")
	require.Contains(t, span.Attributes(), attribute.Int("even", 4))
	require.Contains(t, span.Attributes(), attribute.Int("odd", 0))
}

func TestReach(t *testing.T) {
	a := open(t, mdpModel)

	tcs := []struct {
		name     string
		req      analysis.ReachRequest
		expected []string
		err      string
	}{
		{
			name:     "positive",
			req:      analysis.ReachRequest{Target: []string{"sink"}},
			expected: []string{"s", "t", "u", "sink"},
		},
		{
			name:     "almost sure",
			req:      analysis.ReachRequest{Target: []string{"sink"}, AlmostSure: true},
			expected: []string{"s", "t", "u", "sink"},
		},
		{
			name:     "minimized",
			req:      analysis.ReachRequest{Target: []string{"sink"}, Minimize: true},
			expected: []string{"sink"},
		},
		{
			name:     "blocked",
			req:      analysis.ReachRequest{Target: []string{"sink"}, Blocked: []string{"s"}},
			expected: []string{"sink"},
		},
		{
			name:     "within domain",
			req:      analysis.ReachRequest{Target: []string{"s"}, Domain: []string{"s", "t"}},
			expected: []string{"s", "t"},
		},
		{
			name: "no target",
			req:  analysis.ReachRequest{},
			err:  "invalid reach request",
		},
		{
			name: "unknown state",
			req:  analysis.ReachRequest{Target: []string{"nowhere"}},
			err:  "unknown state `nowhere`",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			states, err := a.Reach(t.Context(), tc.req)
			if tc.err != "" {
				require.ErrorContains(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, states)
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := analysis.Open("testdata/missing.yaml")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunAll(t *testing.T) {
	countComponents := func(ctx context.Context, a *analysis.Analyzer) (int, error) {
		components, err := a.Components(ctx)
		return len(components), err
	}

	results, err := analysis.RunAll(t.Context(), []string{mdpModel, cycleModel, mdpModel}, 2, countComponents)
	require.NoError(t, err)
	require.Equal(t, []analysis.Result[int]{
		{Path: mdpModel, Value: 2},
		{Path: cycleModel, Value: 1},
		{Path: mdpModel, Value: 2},
	}, results)

	_, err = analysis.RunAll(t.Context(), []string{cycleModel, "testdata/missing.yaml"}, 0, countComponents)
	require.ErrorContains(t, err, "testdata/missing.yaml")
}

func TestRunAllTagsLogsWithModel(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() { log.SetGlobalLogger(previous) })

	var buf bytes.Buffer
	log.SetGlobalLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	_, err := analysis.RunAll(t.Context(), []string{cycleModel}, 1, func(ctx context.Context, a *analysis.Analyzer) ([][]string, error) {
		return a.Components(ctx)
	})
	require.NoError(t, err)

	require.Contains(t, buf.String(), `"component":"analysis"`)
	require.Contains(t, buf.String(), `"path":"`+cycleModel+`"`)
	require.Contains(t, buf.String(), "decomposed model")
}
