package stepper

import "github.com/enetx/g"

// Context is the caller-owned record shared by every callback of a machine.
// The machine only forwards it; it never reads or writes its fields.
// Data is for long-lived values (e.g. user ID, settings).
// Meta is for ephemeral metadata (e.g. timestamps, counters).
// Both are included in the machine's JSON snapshot.
type Context struct {
	Data *g.MapSafe[g.String, any]
	Meta *g.MapSafe[g.String, any]
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		Data: g.NewMapSafe[g.String, any](),
		Meta: g.NewMapSafe[g.String, any](),
	}
}
