package typestate

import (
	"fmt"
	"strings"
)

// SymbolKind tags which namespace an undeclared symbol was looked up in.
type SymbolKind string

const (
	SymbolState SymbolKind = "state"
	SymbolEvent SymbolKind = "event"
)

// SpecError marks errors detected while validating or compiling a spec.
// A spec error aborts compilation entirely; no partial MachineType is
// produced. It indicates a defect in the specification, not a transient
// condition, and is never worth retrying.
type SpecError interface {
	error
	specError()
}

// UsageError marks call-time misuse of a compiled machine. The failed call
// has no effect: the caller still holds the original, unchanged Machine.
type UsageError interface {
	error
	usageError()
}

// UndefinedSymbolError reports a rule referencing a state or event that was
// never declared. Rule is the zero-based index of the offending rule, or -1
// when the symbol did not come from a rule.
type UndefinedSymbolError struct {
	Symbol string
	Kind   SymbolKind
	Rule   int
	Pos    *Pos
}

func (e *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("undefined %s %q", e.Kind, e.Symbol)
}

func (e *UndefinedSymbolError) specError() {}

// ConflictingTransitionError reports two rules mapping the same
// (state, event) pair to different destinations.
type ConflictingTransitionError struct {
	State string
	Event string
	Rule  int
	Pos   *Pos
}

func (e *ConflictingTransitionError) Error() string {
	return fmt.Sprintf("conflicting transition: (%s, %s) already has a different destination", e.State, e.Event)
}

func (e *ConflictingTransitionError) specError() {}

// NoInitialStateError reports a spec whose InitialStates set is empty.
type NoInitialStateError struct{}

func (e *NoInitialStateError) Error() string { return "no initial state declared" }

func (e *NoInitialStateError) specError() {}

// InvalidInitialStateError reports a construction request for a state that is
// declared but not initial.
type InvalidInitialStateError struct {
	State string
}

func (e *InvalidInitialStateError) Error() string {
	return fmt.Sprintf("state %q is not an initial state", e.State)
}

func (e *InvalidInitialStateError) specError() {}

// UndefinedTransitionError reports a transition request for a (state, event)
// pair absent from the table.
type UndefinedTransitionError struct {
	State string
	Event string
}

func (e *UndefinedTransitionError) Error() string {
	return fmt.Sprintf("no transition for event %q in state %q", e.Event, e.State)
}

func (e *UndefinedTransitionError) usageError() {}

// IsSpecError reports whether err is a spec-time validation failure.
func IsSpecError(err error) bool {
	_, ok := err.(SpecError)
	return ok
}

// IsUsageError reports whether err is call-time misuse of a compiled machine.
func IsUsageError(err error) bool {
	_, ok := err.(UsageError)
	return ok
}

// FormatError renders err as a diagnostic line for the named machine,
// including the rule index and source position when the error carries them:
//
//	Lock: rule 2 (3:5): undefined state "Unlockd"
//
// Errors outside this package's taxonomy are rendered as name: message.
func FormatError(name string, err error) string {
	var b strings.Builder
	if name != "" {
		b.WriteString(name)
		b.WriteString(": ")
	}

	rule, pos := -1, (*Pos)(nil)
	switch e := err.(type) {
	case *UndefinedSymbolError:
		rule, pos = e.Rule, e.Pos
	case *ConflictingTransitionError:
		rule, pos = e.Rule, e.Pos
	}
	if rule >= 0 {
		fmt.Fprintf(&b, "rule %d", rule)
		if pos != nil {
			fmt.Fprintf(&b, " (%d:%d)", pos.Line, pos.Column)
		}
		b.WriteString(": ")
	}

	b.WriteString(err.Error())
	return b.String()
}
