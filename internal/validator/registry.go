package validator

// Registry holds the active rules in registration order, so reports are
// deterministic.
type Registry struct {
	rules []Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a rule to the registry.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// All returns the registered rules.
func (r *Registry) All() []Rule {
	return r.rules
}

// NewDefaultRegistry returns a registry with every built-in rule.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(fieldsPresentRule{})
	r.Register(sentinelDomainRule{})
	r.Register(unitRecognizedRule{})
	r.Register(nameRecognizedRule{})
	r.Register(supplierListedRule{})
	return r
}
