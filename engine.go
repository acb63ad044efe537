package stepper

import (
	"log/slog"

	"github.com/enetx/g"
)

// engine is the step driver behind a Machine. Each call to resume runs one
// full cycle: exit of the state left active at the previous suspension,
// resolution of the next index, entry of the incoming state. It then returns
// the new active state, which is the suspension point.
//
// The engine is not re-entrant. Callbacks must not resume it.
type engine struct {
	states  g.Slice[*StateDef]
	ctx     *Context
	log     *slog.Logger
	active  *StateDef
	pending int
	prev    int
	started bool
	done    bool
}

func newEngine(states g.Slice[*StateDef], ctx *Context, log *slog.Logger) *engine {
	return &engine{
		states: states,
		ctx:    ctx,
		log:    log,
		active: states[0],
		prev:   -1,
	}
}

// resume continues the engine with an optional requested target and returns
// the newly active state. The first call primes the engine onto the first
// state and ignores requested. Once the engine is finished resume returns
// false and runs nothing.
func (e *engine) resume(requested g.Option[State]) (*StateDef, bool) {
	if e.done {
		return nil, false
	}

	if e.started {
		e.log.Debug("exit", "state", e.states[e.prev].Type)
		runActions(e.states[e.prev].Exit, e.active, e.ctx)

		e.pending = e.resolve(requested)
	}

	e.started = true

	if e.pending >= len(e.states) {
		e.pending = 0
	}

	e.log.Debug("enter", "state", e.states[e.pending].Type, "from", e.active.Type)
	runActions(e.states[e.pending].Enter, e.active, e.ctx)

	e.prev = e.pending
	e.active = e.states[e.pending]

	return e.active, true
}

// resolve picks the pending index for the next cycle. An explicit target that
// matches no state selects the previous index again (a self-transition). With
// no target the engine advances past the active state's position; wrapping
// happens at the start of the next cycle.
func (e *engine) resolve(requested g.Option[State]) int {
	if requested.IsSome() {
		if i := e.index(requested.Some()); i != -1 {
			return i
		}

		e.log.Debug("unknown target, staying", "target", requested.Some(), "state", e.active.Type)

		return e.prev
	}

	return e.index(e.active.Type) + 1
}

// index returns the position of the first state named name, or -1.
func (e *engine) index(name State) int {
	for i, st := range e.states {
		if st.Type == name {
			return i
		}
	}

	return -1
}

// finish terminates the engine and returns the state at the pending index.
// No callbacks run after finish.
func (e *engine) finish() *StateDef {
	e.done = true
	return e.states[e.pending]
}

// reposition moves the active pointer to the state at i without running any
// callbacks. It is used to restore a snapshot.
func (e *engine) reposition(i int) *StateDef {
	e.pending, e.prev = i, i
	e.active = e.states[i]
	e.started = true

	return e.active
}

func runActions(actions g.Slice[Action], active *StateDef, ctx *Context) {
	for _, action := range actions {
		action(active, ctx)
	}
}
