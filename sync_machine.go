package stepper

import (
	"sync"

	"github.com/enetx/g"
)

// SyncMachine is a thread-safe wrapper around a Machine.
// It protects all state-mutating and state-reading operations with a sync.RWMutex,
// making it safe for use across multiple goroutines.
// Callbacks run while the lock is held, so they must not call back into the
// same SyncMachine, including the unsubscribe function returned by Subscribe.
type SyncMachine struct {
	m  *Machine
	mu sync.RWMutex
}

// Interface compliance check.
var _ StateMachine = (*SyncMachine)(nil)

// Sync wraps the machine for concurrent use. The machine must not be used
// directly afterwards.
func (m *Machine) Sync() *SyncMachine { return &SyncMachine{m: m} }

// Current is the thread-safe version of Machine.Current.
func (sm *SyncMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Current()
}

// Active is the thread-safe version of Machine.Active.
func (sm *SyncMachine) Active() *StateDef {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Active()
}

// Done is the thread-safe version of Machine.Done.
func (sm *SyncMachine) Done() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Done()
}

// Context is the thread-safe version of Machine.Context.
// The Context itself is not guarded; its Data and Meta maps are safe on their own.
func (sm *SyncMachine) Context() *Context {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Context()
}

// Next is the thread-safe version of Machine.Next.
// It atomically executes one transition and its notifications.
func (sm *SyncMachine) Next(requested ...State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.Next(requested...)
}

// Send is the thread-safe version of Machine.Send.
func (sm *SyncMachine) Send(event Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.Send(event)
}

// Subscribe is the thread-safe version of Machine.Subscribe.
func (sm *SyncMachine) Subscribe(listener Action) func() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	unsubscribe := sm.m.Subscribe(listener)

	return func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()

		unsubscribe()
	}
}

// Destroy is the thread-safe version of Machine.Destroy.
func (sm *SyncMachine) Destroy() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.Destroy()
}

// States is the thread-safe version of Machine.States.
func (sm *SyncMachine) States() g.Slice[State] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.States()
}

// ToDOT is the thread-safe version of Machine.ToDOT.
func (sm *SyncMachine) ToDOT() g.String {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.ToDOT()
}

// MarshalJSON implements the json.Marshaler interface for thread-safe
// serialization of the machine's snapshot to JSON.
func (sm *SyncMachine) MarshalJSON() ([]byte, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for thread-safe
// restoration of the machine's snapshot from JSON.
func (sm *SyncMachine) UnmarshalJSON(data []byte) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.UnmarshalJSON(data)
}
