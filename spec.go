package typestate

// Pos is an optional source position supplied by a front-end, carried into
// diagnostics. Line and Column are 1-based.
type Pos struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// TransitionRule declares that Event moves each state in From to To. A single
// rule may list several source states sharing one destination (an n-to-1
// rule); BuildTable expands it into one table entry per source.
type TransitionRule struct {
	Event string   `json:"event" yaml:"event"`
	From  []string `json:"from" yaml:"from"`
	To    string   `json:"to" yaml:"to"`
	Pos   *Pos     `json:"pos,omitempty" yaml:"pos,omitempty"`
}

// StateMachineSpec is the structured description of a machine: the output
// contract of a spec front-end, or built directly (see SpecBuilder).
//
// States, Events and InitialStates are ordered for deterministic compilation
// but treated as sets; duplicates are ignored. Events may be left empty, in
// which case BuildTable infers the event set as the union of rule events.
type StateMachineSpec struct {
	Name          string           `json:"name" yaml:"name"`
	States        []string         `json:"states" yaml:"states"`
	Events        []string         `json:"events,omitempty" yaml:"events,omitempty"`
	InitialStates []string         `json:"initial" yaml:"initial"`
	Rules         []TransitionRule `json:"transitions" yaml:"transitions"`
}
