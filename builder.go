package typestate

// SpecBuilder provides a fluent API for constructing a StateMachineSpec
// without hand-writing the record. Declaration order is preserved, so two
// builds of the same chain compile to equal tables.
//
//	spec := typestate.NewSpec("TurnStile").
//		States("Locked", "Unlocked").
//		Initial("Locked").
//		Event("Coin").From("Locked", "Unlocked").To("Unlocked").
//		Event("Push").From("Locked", "Unlocked").To("Locked").
//		Spec()
type SpecBuilder struct {
	spec StateMachineSpec
}

// RuleBuilder accumulates one event's grouped rules. Each From(...).To(...)
// pair appends one n-to-1 rule for the event; an event block may carry
// several groups with distinct destinations, mirroring declarative
// specifications that list multiple arms under one event.
type RuleBuilder struct {
	b     *SpecBuilder
	event string
	from  []string
}

// NewSpec starts a builder for a machine with the given name.
func NewSpec(name string) *SpecBuilder {
	return &SpecBuilder{spec: StateMachineSpec{Name: name}}
}

// States declares states. Repeated calls accumulate.
func (b *SpecBuilder) States(names ...string) *SpecBuilder {
	b.spec.States = append(b.spec.States, names...)
	return b
}

// Events declares events explicitly. When never called, BuildTable infers
// the event set from the rules.
func (b *SpecBuilder) Events(names ...string) *SpecBuilder {
	b.spec.Events = append(b.spec.Events, names...)
	return b
}

// Initial declares initial states. Repeated calls accumulate.
func (b *SpecBuilder) Initial(names ...string) *SpecBuilder {
	b.spec.InitialStates = append(b.spec.InitialStates, names...)
	return b
}

// Event opens a rule group for the named event.
func (b *SpecBuilder) Event(name string) *RuleBuilder {
	return &RuleBuilder{b: b, event: name}
}

// Spec returns the accumulated record, detached from the builder.
func (b *SpecBuilder) Spec() StateMachineSpec {
	out := b.spec
	out.States = append([]string(nil), b.spec.States...)
	out.Events = append([]string(nil), b.spec.Events...)
	out.InitialStates = append([]string(nil), b.spec.InitialStates...)
	out.Rules = append([]TransitionRule(nil), b.spec.Rules...)
	return out
}

// Build validates and compiles the accumulated spec.
func (b *SpecBuilder) Build() (*MachineType, error) {
	return Build(b.Spec())
}

// From sets the source states for the next To.
func (r *RuleBuilder) From(states ...string) *RuleBuilder {
	r.from = append(r.from, states...)
	return r
}

// To closes the group: every pending source state maps to dst under the
// rule's event. Returns the RuleBuilder so further From(...).To(...) groups
// can follow for the same event.
func (r *RuleBuilder) To(dst string) *RuleBuilder {
	r.b.spec.Rules = append(r.b.spec.Rules, TransitionRule{
		Event: r.event,
		From:  r.from,
		To:    dst,
	})
	r.from = nil
	return r
}

// States continues the parent builder's chain.
func (r *RuleBuilder) States(names ...string) *SpecBuilder { return r.b.States(names...) }

// Events continues the parent builder's chain.
func (r *RuleBuilder) Events(names ...string) *SpecBuilder { return r.b.Events(names...) }

// Initial continues the parent builder's chain.
func (r *RuleBuilder) Initial(names ...string) *SpecBuilder { return r.b.Initial(names...) }

// Event opens a rule group for another event.
func (r *RuleBuilder) Event(name string) *RuleBuilder { return r.b.Event(name) }

// Spec returns the parent builder's accumulated record.
func (r *RuleBuilder) Spec() StateMachineSpec { return r.b.Spec() }

// Build validates and compiles the parent builder's spec.
func (r *RuleBuilder) Build() (*MachineType, error) { return r.b.Build() }
