package mapz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultimapOperations(t *testing.T) {
	mm := NewMultiMap[string, int]()
	require.Equal(t, 0, mm.Len())

	mm.Add("odd", 1)
	mm.Add("odd", 3, 5)
	require.Equal(t, 1, mm.Len())

	mm.Add("even", 2, 4)
	mm.Add("odd", 7)
	require.Equal(t, 2, mm.Len())

	var keys []string
	values := map[string][]int{}
	for key, found := range mm.All() {
		keys = append(keys, key)
		values[key] = found
	}
	require.Equal(t, []string{"odd", "even"}, keys)
	require.Equal(t, map[string][]int{"odd": {1, 3, 5, 7}, "even": {2, 4}}, values)
}

func TestMultimapAllStopsEarly(t *testing.T) {
	mm := NewMultiMap[int, string]()
	mm.Add(3, "c")
	mm.Add(1, "a", "b")

	calls := 0
	for range mm.All() {
		calls++
		break
	}
	require.Equal(t, 1, calls)
}
