package typestate

// MachineType is the compiled form of a transition table. It interns every
// state and event into a distinct identity and materializes one Capability
// per declared (state, event) pair; undeclared pairs have no representation
// at all. A MachineType is immutable and safe for concurrent use.
type MachineType struct {
	name     string
	states   []string
	events   []string
	stateIdx map[string]int
	eventIdx map[string]int

	initial  []bool         // per state
	next     [][]int32      // next[state][event] is a destination index, -1 when undeclared
	outgoing [][]Capability // per state, in declaration order
}

// State is an opaque state identity of one MachineType. The zero value is
// invalid; obtain identities from the type that declared them.
type State struct {
	t   *MachineType
	idx int
}

// Event is an opaque event identity of one MachineType.
type Event struct {
	t   *MachineType
	idx int
}

// Capability is one declared transition: the permission to move a machine
// that is currently in Source to Target via Event. Capabilities exist only
// for declared pairs; the set reachable from State.Outgoing is exactly the
// compiled table.
type Capability struct {
	t     *MachineType
	from  int
	event int
	to    int
}

// Compile converts a normalized table into a MachineType. Each table entry
// becomes a single O(1) lookup slot and a Capability; lookup cost does not
// depend on rule count or call history.
func Compile(t *TransitionTable) *MachineType {
	mt := &MachineType{
		name:     t.Name,
		states:   append([]string(nil), t.States...),
		events:   append([]string(nil), t.Events...),
		stateIdx: make(map[string]int, len(t.States)),
		eventIdx: make(map[string]int, len(t.Events)),
	}
	for i, s := range mt.states {
		mt.stateIdx[s] = i
	}
	for i, e := range mt.events {
		mt.eventIdx[e] = i
	}

	mt.initial = make([]bool, len(mt.states))
	for _, s := range t.Initial {
		mt.initial[mt.stateIdx[s]] = true
	}

	mt.next = make([][]int32, len(mt.states))
	for i := range mt.next {
		row := make([]int32, len(mt.events))
		for j := range row {
			row[j] = -1
		}
		mt.next[i] = row
	}

	mt.outgoing = make([][]Capability, len(mt.states))
	for _, key := range t.keys {
		c := Capability{
			t:     mt,
			from:  mt.stateIdx[key.State],
			event: mt.eventIdx[key.Event],
			to:    mt.stateIdx[t.entries[key]],
		}
		mt.next[c.from][c.event] = int32(c.to)
		mt.outgoing[c.from] = append(mt.outgoing[c.from], c)
	}

	return mt
}

// Build is the one-step form of BuildTable followed by Compile.
func Build(spec StateMachineSpec) (*MachineType, error) {
	t, err := BuildTable(spec)
	if err != nil {
		return nil, err
	}
	return Compile(t), nil
}

// Name returns the machine type's name.
func (mt *MachineType) Name() string { return mt.name }

// States returns every declared state identity, in declaration order.
func (mt *MachineType) States() []State {
	out := make([]State, len(mt.states))
	for i := range mt.states {
		out[i] = State{t: mt, idx: i}
	}
	return out
}

// Events returns every declared event identity, in declaration order.
func (mt *MachineType) Events() []Event {
	out := make([]Event, len(mt.events))
	for i := range mt.events {
		out[i] = Event{t: mt, idx: i}
	}
	return out
}

// StateNamed resolves a declared state by name.
func (mt *MachineType) StateNamed(name string) (State, bool) {
	i, ok := mt.stateIdx[name]
	return State{t: mt, idx: i}, ok
}

// EventNamed resolves a declared event by name.
func (mt *MachineType) EventNamed(name string) (Event, bool) {
	i, ok := mt.eventIdx[name]
	return Event{t: mt, idx: i}, ok
}

// Name returns the state's declared name.
func (s State) Name() string { return s.t.states[s.idx] }

// IsInitial reports whether a machine may be constructed in this state.
func (s State) IsInitial() bool { return s.t.initial[s.idx] }

// Outgoing returns this state's capability surface: one Capability per
// declared outgoing event, nothing for undeclared ones. An empty result
// means the state is a sink.
func (s State) Outgoing() []Capability {
	return append([]Capability(nil), s.t.outgoing[s.idx]...)
}

// Name returns the event's declared name.
func (e Event) Name() string { return e.t.events[e.idx] }

// Source returns the state this capability applies in.
func (c Capability) Source() State { return State{t: c.t, idx: c.from} }

// Event returns the event this capability consumes.
func (c Capability) Event() Event { return Event{t: c.t, idx: c.event} }

// Target returns the destination state.
func (c Capability) Target() State { return State{t: c.t, idx: c.to} }

// Apply invokes the capability on m. It fails with UndefinedTransitionError,
// leaving m unchanged, unless m belongs to the same MachineType and currently
// sits in the capability's source state.
func (c Capability) Apply(m Machine) (Machine, error) {
	if m.t != c.t || m.state != c.from {
		err := &UndefinedTransitionError{Event: c.t.events[c.event]}
		if m.t != nil {
			err.State = m.StateName()
		}
		return m, err
	}
	return Machine{t: c.t, state: c.to, last: c.event}, nil
}
