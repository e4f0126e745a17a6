package symerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustBug(t *testing.T) {
	require.True(t, isInTests())
	assert.Panics(t, func() {
		err := MustBugf("some error")
		require.Error(t, err)
	}, "The code did not panic")
}

func TestMustPanic(t *testing.T) {
	require.PanicsWithValue(t, "spine seed is empty for 3 nodes", func() {
		MustPanic("spine seed is empty for %d nodes", 3)
	})
}

func TestRecoverResource(t *testing.T) {
	run := func(fn func()) (err error) {
		defer RecoverResource(&err)
		fn()
		return nil
	}

	t.Run("no panic", func(t *testing.T) {
		require.NoError(t, run(func() {}))
	})

	t.Run("resource panic", func(t *testing.T) {
		err := run(func() {
			panic(NewResourceError("and", "node table full"))
		})
		require.Error(t, err)

		rerr, ok := AsResourceError(err)
		require.True(t, ok)
		require.Equal(t, "and", rerr.Operation)
		require.Equal(t, "decision diagram operation and failed: node table full", err.Error())
	})

	t.Run("other panic", func(t *testing.T) {
		require.Panics(t, func() {
			_ = run(func() {
				panic(errors.New("unrelated"))
			})
		})
	})
}
