package shortname

// Default field names.
const (
	DefaultSource = "name"
	DefaultTarget = "short_name"
)

// Binding ties one source field and one target field to a rule set and an
// inclusion predicate. Bindings on the same entity type are independent.
type Binding struct {
	Source     string
	Target     string
	Rules      RuleSet
	Only       Predicate
	AutoAdjust bool
}

// BindingOption configures a Binding.
type BindingOption func(*Binding)

// WithSource sets the field the full name is read from.
func WithSource(field string) BindingOption {
	return func(b *Binding) {
		if field != "" {
			b.Source = field
		}
	}
}

// WithTarget sets the field the short name is written to.
func WithTarget(field string) BindingOption {
	return func(b *Binding) {
		if field != "" {
			b.Target = field
		}
	}
}

// WithRules replaces the default rule set.
func WithRules(rules RuleSet) BindingOption {
	return func(b *Binding) {
		b.Rules = rules
	}
}

// WithPredicate restricts abbreviation to entities matching p.
func WithPredicate(p Predicate) BindingOption {
	return func(b *Binding) {
		if p != nil {
			b.Only = p
		}
	}
}

// WithAutoAdjust re-levels the whole scope after every save.
func WithAutoAdjust(enabled bool) BindingOption {
	return func(b *Binding) {
		b.AutoAdjust = enabled
	}
}

// NewBinding creates a binding from name to short_name with the default
// rules, applying opts on top.
func NewBinding(opts ...BindingOption) Binding {
	b := Binding{
		Source: DefaultSource,
		Target: DefaultTarget,
		Rules:  DefaultRules(),
		Only:   Always,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// withDefaults fills zero fields of a Binding literal.
func (b Binding) withDefaults() Binding {
	if b.Source == "" {
		b.Source = DefaultSource
	}
	if b.Target == "" {
		b.Target = DefaultTarget
	}
	if b.Only == nil {
		b.Only = Always
	}
	return b
}
