package typestate

// Machine is an immutable machine instance: a current state and, after the
// first transition, the event that produced it. Transition returns a fresh
// value and never mutates the receiver, so there is no shared mutable state
// to protect; hosts sharing one logical machine across goroutines own the
// serialization of that sharing.
type Machine struct {
	t     *MachineType
	state int
	last  int // event index, -1 immediately after construction
}

// New constructs a machine in s. Construction is restricted to initial
// states; any other declared state is reachable only via transitions.
func (mt *MachineType) New(s State) (Machine, error) {
	if s.t != mt {
		err := &InvalidInitialStateError{}
		if s.t != nil {
			err.State = s.Name()
		}
		return Machine{}, err
	}
	if !mt.initial[s.idx] {
		return Machine{}, &InvalidInitialStateError{State: s.Name()}
	}
	return Machine{t: mt, state: s.idx, last: -1}, nil
}

// NewNamed is New with the state resolved by name.
func (mt *MachineType) NewNamed(name string) (Machine, error) {
	s, ok := mt.StateNamed(name)
	if !ok {
		return Machine{}, &UndefinedSymbolError{Symbol: name, Kind: SymbolState, Rule: -1}
	}
	return mt.New(s)
}

// Transition consumes e and returns the successor machine. When (current
// state, e) is not a declared pair the call fails with
// UndefinedTransitionError before any state change; the receiver is already
// immutable, so the caller's value is intact either way. The lookup is O(1).
func (m Machine) Transition(e Event) (Machine, error) {
	if e.t != m.t {
		err := &UndefinedTransitionError{State: m.StateName()}
		if e.t != nil {
			err.Event = e.Name()
		}
		return m, err
	}
	to := m.t.next[m.state][e.idx]
	if to < 0 {
		return m, &UndefinedTransitionError{State: m.StateName(), Event: e.Name()}
	}
	return Machine{t: m.t, state: int(to), last: e.idx}, nil
}

// Can reports whether e is declared for the current state.
func (m Machine) Can(e Event) bool {
	return e.t == m.t && m.t.next[m.state][e.idx] >= 0
}

// State returns the current state identity.
func (m Machine) State() State { return State{t: m.t, idx: m.state} }

// StateName returns the current state's name.
func (m Machine) StateName() string { return m.t.states[m.state] }

// LastEvent returns the event that produced the current state. ok is false
// for a freshly constructed machine.
func (m Machine) LastEvent() (Event, bool) {
	if m.last < 0 {
		return Event{}, false
	}
	return Event{t: m.t, idx: m.last}, true
}

// Snapshot is a machine instance reduced to names, for host-side persistence.
type Snapshot struct {
	Machine   string `json:"machine" yaml:"machine"`
	State     string `json:"state" yaml:"state"`
	LastEvent string `json:"lastEvent,omitempty" yaml:"lastEvent,omitempty"`
}

// Snapshot captures the instance as a plain record.
func (m Machine) Snapshot() Snapshot {
	snap := Snapshot{Machine: m.t.name, State: m.StateName()}
	if m.last >= 0 {
		snap.LastEvent = m.t.events[m.last]
	}
	return snap
}

// Restore rebuilds a machine from a snapshot. Unlike New it accepts any
// declared state, initial or not: a snapshot is evidence the machine legally
// reached that state. Unknown state or event names fail with
// UndefinedSymbolError.
func (mt *MachineType) Restore(snap Snapshot) (Machine, error) {
	si, ok := mt.stateIdx[snap.State]
	if !ok {
		return Machine{}, &UndefinedSymbolError{Symbol: snap.State, Kind: SymbolState, Rule: -1}
	}
	last := -1
	if snap.LastEvent != "" {
		ei, ok := mt.eventIdx[snap.LastEvent]
		if !ok {
			return Machine{}, &UndefinedSymbolError{Symbol: snap.LastEvent, Kind: SymbolEvent, Rule: -1}
		}
		last = ei
	}
	return Machine{t: mt, state: si, last: last}, nil
}
