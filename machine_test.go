package typestate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/typestate"
)

func mustBuild(t *testing.T, spec typestate.StateMachineSpec) *typestate.MachineType {
	t.Helper()
	mt, err := typestate.Build(spec)
	require.NoError(t, err)
	return mt
}

func TestLockScenario(t *testing.T) {
	mt := mustBuild(t, lockSpec())

	locked, ok := mt.StateNamed("Locked")
	require.True(t, ok)
	turnKey, ok := mt.EventNamed("TurnKey")
	require.True(t, ok)

	m, err := mt.New(locked)
	require.NoError(t, err)
	_, hasLast := m.LastEvent()
	assert.False(t, hasLast, "fresh machine carries no last event")

	m2, err := m.Transition(turnKey)
	require.NoError(t, err)
	assert.Equal(t, "Unlocked", m2.StateName())
	last, hasLast := m2.LastEvent()
	require.True(t, hasLast)
	assert.Equal(t, "TurnKey", last.Name())

	// Unlocked declares no TurnKey arm.
	_, err = m2.Transition(turnKey)
	var undef *typestate.UndefinedTransitionError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "Unlocked", undef.State)
	assert.Equal(t, "TurnKey", undef.Event)
	assert.True(t, typestate.IsUsageError(err))
	assert.False(t, typestate.IsSpecError(err))
}

func TestTurnstileScenario(t *testing.T) {
	mt := mustBuild(t, turnstileSpec())

	coin, _ := mt.EventNamed("Coin")
	push, _ := mt.EventNamed("Push")

	m, err := mt.NewNamed("Locked")
	require.NoError(t, err)

	for _, step := range []struct {
		event typestate.Event
		want  string
	}{
		{coin, "Unlocked"},
		{coin, "Unlocked"},
		{push, "Locked"},
		{push, "Locked"},
	} {
		m, err = m.Transition(step.event)
		require.NoError(t, err)
		assert.Equal(t, step.want, m.StateName())
	}
}

func TestNewRejectsNonInitialState(t *testing.T) {
	mt := mustBuild(t, lockSpec())

	unlocked, ok := mt.StateNamed("Unlocked")
	require.True(t, ok)

	_, err := mt.New(unlocked)
	var invalid *typestate.InvalidInitialStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Unlocked", invalid.State)

	_, err = mt.NewNamed("Ajar")
	var symErr *typestate.UndefinedSymbolError
	require.ErrorAs(t, err, &symErr)
}

// A failed transition leaves the caller's value untouched, and a successful
// one does not disturb earlier values.
func TestMachineValueSemantics(t *testing.T) {
	mt := mustBuild(t, lockSpec())
	turnKey, _ := mt.EventNamed("TurnKey")

	m, err := mt.NewNamed("Locked")
	require.NoError(t, err)

	m2, err := m.Transition(turnKey)
	require.NoError(t, err)
	assert.Equal(t, "Locked", m.StateName(), "original value unchanged")
	assert.Equal(t, "Unlocked", m2.StateName())

	m3, err := m2.Transition(turnKey)
	require.Error(t, err)
	assert.Equal(t, "Unlocked", m3.StateName(), "failed call returns the prior value")
}

// Sweep the full state × event product: Transition must accept exactly the
// declared pairs and reject every other pair, the same partition a static
// typestate encoding would enforce at compile time.
func TestTransitionPartitionExhaustive(t *testing.T) {
	specs := []typestate.StateMachineSpec{lockSpec(), turnstileSpec(), trafficSpec()}

	for _, spec := range specs {
		t.Run(spec.Name, func(t *testing.T) {
			table, err := typestate.BuildTable(spec)
			require.NoError(t, err)
			mt := typestate.Compile(table)

			for _, s := range mt.States() {
				m, err := mt.Restore(typestate.Snapshot{State: s.Name()})
				require.NoError(t, err)

				for _, e := range mt.Events() {
					want, declared := table.Destination(s.Name(), e.Name())
					assert.Equal(t, declared, m.Can(e), "(%s, %s)", s.Name(), e.Name())

					next, err := m.Transition(e)
					if declared {
						require.NoError(t, err)
						assert.Equal(t, want, next.StateName())
					} else {
						var undef *typestate.UndefinedTransitionError
						require.ErrorAs(t, err, &undef)
						assert.Equal(t, s.Name(), next.StateName())
					}
				}
			}
		})
	}
}

func trafficSpec() typestate.StateMachineSpec {
	return typestate.NewSpec("TrafficLight").
		States("Red", "Yellow", "Green", "Fault").
		Initial("Red").
		Event("Advance").From("Red").To("Green").
		From("Green").To("Yellow").
		From("Yellow").To("Red").
		Event("Fail").From("Red", "Yellow", "Green").To("Fault").
		Spec()
}

func TestEventsFromOtherTypeRejected(t *testing.T) {
	lock := mustBuild(t, lockSpec())
	stile := mustBuild(t, turnstileSpec())

	coin, ok := stile.EventNamed("Coin")
	require.True(t, ok)

	m, err := lock.NewNamed("Locked")
	require.NoError(t, err)
	assert.False(t, m.Can(coin))
	_, err = m.Transition(coin)
	var undef *typestate.UndefinedTransitionError
	require.ErrorAs(t, err, &undef)
}

func TestSnapshotRoundTrip(t *testing.T) {
	mt := mustBuild(t, turnstileSpec())
	coin, _ := mt.EventNamed("Coin")

	m, err := mt.NewNamed("Locked")
	require.NoError(t, err)
	m, err = m.Transition(coin)
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.Equal(t, typestate.Snapshot{Machine: "TurnStile", State: "Unlocked", LastEvent: "Coin"}, snap)

	restored, err := mt.Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, "Unlocked", restored.StateName())
	last, ok := restored.LastEvent()
	require.True(t, ok)
	assert.Equal(t, "Coin", last.Name())
}

func TestRestoreRejectsUnknownNames(t *testing.T) {
	mt := mustBuild(t, lockSpec())

	_, err := mt.Restore(typestate.Snapshot{State: "Ajar"})
	var symErr *typestate.UndefinedSymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, typestate.SymbolState, symErr.Kind)

	_, err = mt.Restore(typestate.Snapshot{State: "Locked", LastEvent: "Knock"})
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, typestate.SymbolEvent, symErr.Kind)
}

// Restore, unlike New, accepts non-initial states: a snapshot proves the
// machine legally reached that state.
func TestRestoreAcceptsNonInitialState(t *testing.T) {
	mt := mustBuild(t, lockSpec())

	m, err := mt.Restore(typestate.Snapshot{State: "Unlocked"})
	require.NoError(t, err)
	assert.Equal(t, "Unlocked", m.StateName())
}
