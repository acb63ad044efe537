package stepper

import "github.com/enetx/g"

type (
	// State is the name of a state. It is the value reported by Machine.Current.
	State g.String
	// Event is the name used to look up a transition in a state's On map.
	Event g.String

	// Action is a side-effecting callback. It receives the active state and the
	// shared context. Listeners passed to Subscribe are Actions too.
	Action func(active *StateDef, ctx *Context)
)

// Transition is a resolved event target together with the actions that run
// before the machine moves to it.
type Transition struct {
	Target  State
	Actions g.Slice[Action]
}

// To returns a transition straight to target.
func To(target State) Transition { return Transition{Target: target} }

// Do returns a transition to target that runs actions, in order, first.
func Do(target State, actions ...Action) Transition {
	return Transition{Target: target, Actions: g.SliceOf(actions...)}
}

// StateDef is an authored state: its name, event map and entry/exit callbacks.
// Events is the state's "on" map.
type StateDef struct {
	Type   State
	Events g.Map[Event, Transition]
	Enter  g.Slice[Action]
	Exit   g.Slice[Action]
}

// Definition is anything that can stand in the state list given to New.
// A bare State is shorthand for a StateDef with no events or callbacks.
type Definition interface {
	StateDef() *StateDef
}

var (
	_ Definition = State("")
	_ Definition = (*StateDef)(nil)
)

// StateDef implements Definition.
func (s State) StateDef() *StateDef { return &StateDef{Type: s} }

// StateDef implements Definition.
func (d *StateDef) StateDef() *StateDef { return d }

// Def starts a state definition named name.
func Def(name State) *StateDef { return &StateDef{Type: name} }

// On maps event to tr.
func (d *StateDef) On(event Event, tr Transition) *StateDef {
	if d.Events == nil {
		d.Events = g.NewMap[Event, Transition]()
	}

	d.Events[event] = tr

	return d
}

// OnEnter appends entry callbacks.
func (d *StateDef) OnEnter(actions ...Action) *StateDef {
	d.Enter = append(d.Enter, actions...)
	return d
}

// OnExit appends exit callbacks.
func (d *StateDef) OnExit(actions ...Action) *StateDef {
	d.Exit = append(d.Exit, actions...)
	return d
}

// transition returns the transition registered for event, if any.
func (d *StateDef) transition(event Event) g.Option[Transition] {
	if tr, ok := d.Events[event]; ok {
		return g.Some(tr)
	}

	return g.None[Transition]()
}
