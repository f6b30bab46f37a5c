// Package typestate compiles a declarative state machine specification into a
// machine whose operations are restricted, per current state, to exactly the
// transitions the specification declares.
//
// The pipeline is: a StateMachineSpec (hand-built, produced by a front-end, or
// loaded via the specfile package) is validated and normalized by BuildTable,
// then Compile turns the table into a MachineType with opaque State and Event
// identities and one Capability per declared (state, event) pair. Machine
// values are immutable: Transition returns a fresh Machine and never mutates
// the receiver, so a failed call leaves the caller holding the original state.
//
// Undeclared transitions are rejected before any state change. Go cannot make
// them unrepresentable at compile time without code generation, so the
// compiled surface makes them structurally absent instead: State.Outgoing
// enumerates exactly the declared capabilities, and nothing else exists to
// invoke.
package typestate
