// Package stepper provides a minimal cyclic finite state machine. A machine is
// built from an ordered list of states, each with optional enter/exit
// callbacks and an event map, and a shared Context. It moves a single active
// pointer through the list, either by explicit target name or by list order,
// and notifies subscribers after every change. It is built with types and
// utilities from the github.com/enetx/g library.
//
// A Machine is single-threaded and not re-entrant: enter, exit, transition
// actions and listeners must not call Next or Send on the machine that is
// running them. Use SyncMachine to share a machine across goroutines.
package stepper

import (
	"log/slog"

	"github.com/enetx/g"
	"github.com/google/uuid"
)

// Machine drives a step engine and owns its listeners. The Context is shared
// with the caller, who may keep and mutate it.
type Machine struct {
	name      g.String
	states    g.Slice[*StateDef]
	engine    *engine
	ctx       *Context
	active    *StateDef
	done      bool
	listeners g.Slice[*subscription]
	log       *slog.Logger
	metrics   *Metrics
}

type subscription struct {
	fn Action
}

// Option configures a Machine.
type Option func(*Machine)

// WithName sets the machine name used in logs, metrics and snapshots.
// By default every machine gets a random UUID.
func WithName(name g.String) Option {
	return func(m *Machine) { m.name = name }
}

// WithLogger sets the logger for transition diagnostics. By default nothing
// is logged.
func WithLogger(log *slog.Logger) Option {
	return func(m *Machine) { m.log = log }
}

// WithMetrics records transitions into metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Machine) { m.metrics = metrics }
}

// New creates a machine from states and primes it onto the first state,
// running that state's enter callbacks. A nil ctx is replaced with an empty
// Context. New returns ErrStateless if states is empty.
func New(states []Definition, ctx *Context, opts ...Option) (*Machine, error) {
	if len(states) == 0 {
		return nil, ErrStateless
	}

	if ctx == nil {
		ctx = NewContext()
	}

	m := &Machine{
		name:   g.String(uuid.NewString()),
		states: make(g.Slice[*StateDef], 0, len(states)),
		ctx:    ctx,
		log:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	for _, def := range states {
		m.states = append(m.states, def.StateDef())
	}

	m.log = m.log.With("machine", m.name)
	m.engine = newEngine(m.states, m.ctx, m.log)
	m.active, _ = m.engine.resume(g.None[State]())

	if m.metrics != nil {
		m.metrics.primed(m.name, m.active.Type)
	}

	return m, nil
}

// Name returns the machine name.
func (m *Machine) Name() g.String { return m.name }

// Current returns the type of the active state.
func (m *Machine) Current() State { return m.active.Type }

// Active returns the active state definition.
func (m *Machine) Active() *StateDef { return m.active }

// Done reports whether the machine has been destroyed.
func (m *Machine) Done() bool { return m.done }

// Context returns the context shared by all callbacks.
func (m *Machine) Context() *Context { return m.ctx }

// States returns the names of all states in list order.
func (m *Machine) States() g.Slice[State] {
	names := make(g.Slice[State], 0, len(m.states))
	for _, st := range m.states {
		names = append(names, st.Type)
	}

	return names
}

// Next leaves the active state and enters the next one. With a requested
// state name the machine moves to the first state of that name, or re-enters
// the active state if none matches. Without one it moves to the following
// state in list order, wrapping to the first. Subscribed listeners are
// notified afterwards, in subscription order. Next does nothing once the
// machine is destroyed.
func (m *Machine) Next(requested ...State) {
	target := g.None[State]()
	if len(requested) > 0 {
		target = g.Some(requested[0])
	}

	m.next(target)
}

func (m *Machine) next(target g.Option[State]) {
	if m.done {
		return
	}

	from := m.active

	state, ok := m.engine.resume(target)
	if !ok {
		return
	}

	m.active = state

	m.log.Debug("transition", "from", from.Type, "to", state.Type)

	if m.metrics != nil {
		m.metrics.transitioned(m.name, from.Type, state.Type)
	}

	m.notify()
}

// Send looks event up in the active state's event map. A structured
// transition runs its actions, in order, before moving to its target.
//
// An event the active state does not map, including when it maps no events
// at all, falls through to a positional Next. This mirrors the long-standing
// behavior of the machine and may be surprising: unknown events advance.
func (m *Machine) Send(event Event) {
	if m.done {
		return
	}

	tr := m.active.transition(event)
	if tr.IsNone() {
		m.log.Debug("unmapped event, advancing", "event", event, "state", m.active.Type)
		m.next(g.None[State]())

		return
	}

	t := tr.Some()
	runActions(t.Actions, m.active, m.ctx)
	m.next(g.Some(t.Target))
}

// Subscribe registers listener for every later transition and immediately
// calls it once with the active state. The returned function removes the
// listener; calling it more than once is safe.
//
// Subscribing to a destroyed machine only replays the active state.
func (m *Machine) Subscribe(listener Action) func() {
	if m.done {
		listener(m.active, m.ctx)
		return func() {}
	}

	l := &subscription{fn: listener}
	m.listeners = append(m.listeners, l)

	listener(m.active, m.ctx)

	return func() { m.unsubscribe(l) }
}

func (m *Machine) unsubscribe(l *subscription) {
	kept := m.listeners[:0:0]
	for _, other := range m.listeners {
		if other != l {
			kept = append(kept, other)
		}
	}

	m.listeners = kept
}

// notify calls every listener subscribed when the round starts. Listeners
// added or removed during the round take effect from the next one. A listener
// that destroys the machine ends the round.
func (m *Machine) notify() {
	for _, l := range m.listeners.Clone() {
		if m.done {
			return
		}

		l.fn(m.active, m.ctx)
	}
}

// Destroy terminates the machine. No further callbacks or notifications run,
// Done reports true and Current keeps reporting the last active state.
func (m *Machine) Destroy() {
	if m.done {
		return
	}

	m.active = m.engine.finish()
	m.done = true
	m.listeners = nil

	m.log.Debug("destroyed", "state", m.active.Type)

	if m.metrics != nil {
		m.metrics.destroyed(m.name, m.active.Type)
	}
}
