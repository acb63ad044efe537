package stepper

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// ToDOT generates a DOT language string representation of the machine for visualization.
// Event transitions are solid edges; list-order advancement is a dashed edge
// from each state to the one after it. Targets that name no state are drawn as
// self-loops, since that is where the machine goes.
func (m *Machine) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph Machine {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", m.states[0].Type))

	names := m.States()
	known := g.SetOf(names...)
	seen := g.NewSet[State]()

	for _, st := range m.states {
		if seen.Contains(st.Type) {
			continue
		}

		seen.Insert(st.Type)

		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", st.Type))

		switch {
		case m.done && st.Type == m.active.Type:
			attrs.Push("fillcolor=\"#d3d3d3\"", "shape=doublecircle")
		case st.Type == m.active.Type:
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		}

		var tooltips g.Slice[g.String]

		if len(st.Enter) > 0 {
			tooltips.Push("enter")
		}

		if len(st.Exit) > 0 {
			tooltips.Push("exit")
		}

		if tooltips.NotEmpty() {
			attrs.Push(g.Format("tooltip=\"{}\"", tooltips.Join("\\n")))
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", st.Type, attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for i, st := range m.states {
		events := make(g.Slice[Event], 0, len(st.Events))
		for event := range st.Events {
			events = append(events, event)
		}

		events.SortBy(cmp.Cmp)

		for _, event := range events {
			tr := st.Events[event]

			label := g.String(event)
			if len(tr.Actions) > 0 {
				label += " (actions)"
			}

			to := tr.Target
			if !known.Contains(to) {
				label += g.Format(" (unknown: {})", to)
				to = st.Type
			}

			b.WriteString(g.Format("  \"{}\" -> \"{}\" [label=\" {} \"];\n", st.Type, to, label))
		}

		next := m.states[(i+1)%len(m.states)]
		b.WriteString(
			g.Format("  \"{}\" -> \"{}\" [label=\" next \", style=dashed, color=\"#888888\"];\n", st.Type, next.Type),
		)
	}

	b.WriteString("\n  subgraph cluster_legend {\n")
	b.WriteString("    label = \"Legend\";\n")
	b.WriteString("    style = dashed;\n")
	b.WriteString(`    key [label=<
      <table border="0" cellpadding="4" cellspacing="0" cellborder="0">
        <tr><td align="right">●</td><td>Regular state</td></tr>
        <tr><td align="right"><font color="green">◎</font></td><td>Current state</td></tr>
        <tr><td align="right"><font color="gray">◎</font></td><td>Last state of a destroyed machine</td></tr>
        <tr><td align="right"><font color="gray">⇢</font></td><td>Advance in list order</td></tr>
      </table>
    >, shape=none];`)

	b.WriteString("  }\n")
	b.WriteString("}\n")

	return b.String()
}
