package stepper

import "github.com/enetx/g"

// StateMachine is the surface shared by Machine and SyncMachine.
type StateMachine interface {
	Current() State
	Active() *StateDef
	Done() bool
	Context() *Context
	Next(...State)
	Send(Event)
	Subscribe(Action) func()
	Destroy()
	States() g.Slice[State]
	ToDOT() g.String
	MarshalJSON() ([]byte, error)
	UnmarshalJSON(data []byte) error
}

// Interface compliance check.
var _ StateMachine = (*Machine)(nil)
