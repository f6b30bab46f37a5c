package typestate

// TableKey identifies one (source state, event) slot of the table.
type TableKey struct {
	State string
	Event string
}

// TransitionTable is the normalized, conflict-free form of a spec: a strict
// function from (source state, event) to exactly one destination. States with
// no outgoing entries are valid sinks.
type TransitionTable struct {
	Name    string
	States  []string
	Events  []string
	Initial []string

	entries map[TableKey]string
	keys    []TableKey // insertion order, for deterministic compilation
}

// BuildTable validates spec and expands its rules into a normalized table.
// It fails with a SpecError on the first violation: empty or undeclared
// initial states, a rule referencing an undeclared symbol, or two rules
// mapping one (state, event) pair to different destinations. Re-declaring a
// pair with the same destination is idempotent, not a conflict.
func BuildTable(spec StateMachineSpec) (*TransitionTable, error) {
	states := dedup(spec.States)
	stateSet := make(map[string]bool, len(states))
	for _, s := range states {
		stateSet[s] = true
	}

	initial := dedup(spec.InitialStates)
	if len(initial) == 0 {
		return nil, &NoInitialStateError{}
	}
	for _, s := range initial {
		if !stateSet[s] {
			return nil, &UndefinedSymbolError{Symbol: s, Kind: SymbolState, Rule: -1}
		}
	}

	// An empty Events set means the front-end left the events implicit;
	// infer them as the union of rule events, in rule order.
	events := dedup(spec.Events)
	eventSet := make(map[string]bool, len(events))
	for _, e := range events {
		eventSet[e] = true
	}
	infer := len(events) == 0

	t := &TransitionTable{
		Name:    spec.Name,
		States:  states,
		Initial: initial,
		entries: make(map[TableKey]string),
	}

	for i, rule := range spec.Rules {
		if !eventSet[rule.Event] {
			if !infer {
				return nil, &UndefinedSymbolError{Symbol: rule.Event, Kind: SymbolEvent, Rule: i, Pos: rule.Pos}
			}
			eventSet[rule.Event] = true
			events = append(events, rule.Event)
		}
		if !stateSet[rule.To] {
			return nil, &UndefinedSymbolError{Symbol: rule.To, Kind: SymbolState, Rule: i, Pos: rule.Pos}
		}
		for _, from := range rule.From {
			if !stateSet[from] {
				return nil, &UndefinedSymbolError{Symbol: from, Kind: SymbolState, Rule: i, Pos: rule.Pos}
			}
			key := TableKey{State: from, Event: rule.Event}
			if to, exists := t.entries[key]; exists {
				if to != rule.To {
					return nil, &ConflictingTransitionError{State: from, Event: rule.Event, Rule: i, Pos: rule.Pos}
				}
				continue
			}
			t.entries[key] = rule.To
			t.keys = append(t.keys, key)
		}
	}

	t.Events = events
	return t, nil
}

// Destination returns the destination for (state, event), if declared.
func (t *TransitionTable) Destination(state, event string) (string, bool) {
	to, ok := t.entries[TableKey{State: state, Event: event}]
	return to, ok
}

// Len returns the number of table entries.
func (t *TransitionTable) Len() int { return len(t.keys) }

// Keys returns the declared (state, event) pairs in declaration order.
func (t *TransitionTable) Keys() []TableKey {
	out := make([]TableKey, len(t.keys))
	copy(out, t.keys)
	return out
}

// Equal reports whether two tables declare the same machine: same name,
// symbol sets in the same order, and identical entries.
func (t *TransitionTable) Equal(o *TransitionTable) bool {
	if t.Name != o.Name ||
		!sliceEqual(t.States, o.States) ||
		!sliceEqual(t.Events, o.Events) ||
		!sliceEqual(t.Initial, o.Initial) ||
		len(t.entries) != len(o.entries) {
		return false
	}
	for k, to := range t.entries {
		if oto, ok := o.entries[k]; !ok || oto != to {
			return false
		}
	}
	return true
}

func dedup(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
