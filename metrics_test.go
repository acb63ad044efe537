package stepper_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/enetx/stepper"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := stepper.NewMetrics(reg)

	m := newMachine(t,
		[]stepper.Definition{stepper.State("a"), stepper.State("b")},
		stepper.WithName("light"),
		stepper.WithMetrics(metrics),
	)

	m.Next()
	m.Next()
	m.Next()
	m.Destroy()
	m.Next()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)

	count, err := testutil.GatherAndCount(reg, "stepper_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "stepper_active_state")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_Values(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	m := newMachine(t,
		[]stepper.Definition{stepper.State("a"), stepper.State("b")},
		stepper.WithName("door"),
		stepper.WithMetrics(stepper.NewMetrics(reg)),
	)

	m.Next()
	m.Next()

	expected := `
# HELP stepper_active_state 1 for the active state of a machine, 0 for states it has left
# TYPE stepper_active_state gauge
stepper_active_state{machine="door",state="a"} 1
stepper_active_state{machine="door",state="b"} 0
# HELP stepper_transitions_total Total number of transitions by machine, from_state and to_state
# TYPE stepper_transitions_total counter
stepper_transitions_total{from_state="a",machine="door",to_state="b"} 1
stepper_transitions_total{from_state="b",machine="door",to_state="a"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"stepper_active_state", "stepper_transitions_total"))
}

func TestMetrics_Unregistered(t *testing.T) {
	t.Parallel()

	m := newMachine(t, []stepper.Definition{stepper.State("a")}, stepper.WithMetrics(stepper.NewMetrics(nil)))
	m.Next()
	m.Destroy()
	assert.True(t, m.Done())
}

func TestMetrics_Restore(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	m := newMachine(t,
		[]stepper.Definition{stepper.State("a"), stepper.State("b")},
		stepper.WithName("restored"),
		stepper.WithMetrics(stepper.NewMetrics(reg)),
	)

	require.NoError(t, json.Unmarshal([]byte(`{"current":"b"}`), m))

	expected := `
# HELP stepper_active_state 1 for the active state of a machine, 0 for states it has left
# TYPE stepper_active_state gauge
stepper_active_state{machine="restored",state="a"} 0
stepper_active_state{machine="restored",state="b"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "stepper_active_state"))

	m.Next()

	expected = `
# HELP stepper_active_state 1 for the active state of a machine, 0 for states it has left
# TYPE stepper_active_state gauge
stepper_active_state{machine="restored",state="a"} 1
stepper_active_state{machine="restored",state="b"} 0
# HELP stepper_transitions_total Total number of transitions by machine, from_state and to_state
# TYPE stepper_transitions_total counter
stepper_transitions_total{from_state="b",machine="restored",to_state="a"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"stepper_active_state", "stepper_transitions_total"))
}
