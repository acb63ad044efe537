package stepper

import (
	"log/slog"
	"testing"

	"github.com/enetx/g"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(names ...State) *engine {
	states := make(g.Slice[*StateDef], 0, len(names))
	for _, name := range names {
		states = append(states, name.StateDef())
	}

	return newEngine(states, NewContext(), slog.New(slog.DiscardHandler))
}

func TestEngine_PrimeIgnoresRequest(t *testing.T) {
	t.Parallel()

	e := newTestEngine("a", "b")

	state, ok := e.resume(g.Some[State]("b"))
	require.True(t, ok)
	assert.Equal(t, State("a"), state.Type)
}

func TestEngine_Wraps(t *testing.T) {
	t.Parallel()

	e := newTestEngine("a", "b")
	e.resume(g.None[State]())

	var visited g.Slice[State]
	for range 4 {
		state, ok := e.resume(g.None[State]())
		require.True(t, ok)
		visited.Push(state.Type)
	}

	assert.Equal(t, g.Slice[State]{"b", "a", "b", "a"}, visited)
}

func TestEngine_Finish(t *testing.T) {
	t.Parallel()

	e := newTestEngine("a", "b", "c")
	e.resume(g.None[State]())
	e.resume(g.Some[State]("c"))

	assert.Equal(t, State("c"), e.finish().Type)

	state, ok := e.resume(g.None[State]())
	assert.False(t, ok)
	assert.Nil(t, state)
}

func TestEngine_FinishBeforePrime(t *testing.T) {
	t.Parallel()

	e := newTestEngine("a", "b")
	assert.Equal(t, State("a"), e.finish().Type)
}

func TestEngine_Reposition(t *testing.T) {
	t.Parallel()

	e := newTestEngine("a", "b", "c")
	e.resume(g.None[State]())

	assert.Equal(t, State("b"), e.reposition(1).Type)

	state, ok := e.resume(g.None[State]())
	require.True(t, ok)
	assert.Equal(t, State("c"), state.Type)
}
