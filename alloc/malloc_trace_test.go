package alloc

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/gomalloc/arena"
)

// TestRandomizedTraceStaysConsistent replays a seeded pseudo-random
// sequence of allocate/free/reallocate operations and runs Check after
// every single one, the Go-native analogue of replaying a .rep trace
// against the checker as a property oracle.
func TestRandomizedTraceStaysConsistent(t *testing.T) {
	a := arena.NewSlice()
	h, err := New(a)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(12345))
	live := make(map[int]Ref)
	nextID := 0

	for i := 0; i < 5000; i++ {
		switch {
		case len(live) == 0 || rng.Intn(3) != 0:
			size := rng.Intn(512) + 1
			ref, payload, err := h.Alloc(size)
			require.NoError(t, err)
			require.NotZero(t, ref)
			for j := range payload {
				payload[j] = byte(nextID)
			}
			live[nextID] = ref
			nextID++

		default:
			id := pickKey(live, rng)
			if rng.Intn(2) == 0 {
				h.Free(live[id])
				delete(live, id)
			} else {
				size := rng.Intn(512) + 1
				newRef, _, err := h.Realloc(live[id], size)
				require.NoError(t, err)
				live[id] = newRef
			}
		}

		var sb strings.Builder
		ok := h.Check(&sb, false)
		require.True(t, ok, "iteration %d: %s", i, sb.String())
	}
}

func pickKey(m map[int]Ref, rng *rand.Rand) int {
	n := rng.Intn(len(m))
	i := 0
	for k := range m {
		if i == n {
			return k
		}
		i++
	}
	panic("unreachable")
}
