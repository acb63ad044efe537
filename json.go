package stepper

import (
	"encoding/json"
	"fmt"

	"github.com/enetx/g"
)

// Snapshot is a serializable representation of a machine's position and context.
// It uses standard map types for robust JSON handling. No transition history
// is recorded.
type Snapshot struct {
	Name    g.String             `json:"name"`
	Current State                `json:"current"`
	Done    bool                 `json:"done"`
	Data    g.Map[g.String, any] `json:"data"`
	Meta    g.Map[g.String, any] `json:"meta"`
}

// MarshalJSON implements the json.Marshaler interface.
func (m *Machine) MarshalJSON() ([]byte, error) {
	snapshot := Snapshot{
		Name:    m.name,
		Current: m.active.Type,
		Done:    m.done,
		Data:    m.ctx.Data.Iter().Collect(),
		Meta:    m.ctx.Meta.Iter().Collect(),
	}

	return json.Marshal(snapshot)
}

// UnmarshalJSON implements the json.Unmarshaler interface. It moves the
// active pointer to the snapshot's current state without running enter,
// exit or listener callbacks, and replaces the context's Data and Meta when
// present. The Context is shared, so every other machine using it sees the
// restored Data and Meta too. A snapshot marked done destroys the machine.
// A destroyed machine ignores snapshots.
func (m *Machine) UnmarshalJSON(data []byte) error {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to unmarshal machine snapshot: %w", err)
	}

	if m.done {
		return nil
	}

	i := m.engine.index(snapshot.Current)
	if i == -1 {
		return &ErrUnknownState{State: snapshot.Current}
	}

	from := m.active
	m.active = m.engine.reposition(i)

	if m.metrics != nil {
		m.metrics.repositioned(m.name, from.Type, m.active.Type)
	}

	if snapshot.Data != nil {
		m.ctx.Data = snapshot.Data.ToMapSafe()
	}

	if snapshot.Meta != nil {
		m.ctx.Meta = snapshot.Meta.ToMapSafe()
	}

	if snapshot.Done {
		m.Destroy()
	}

	return nil
}
