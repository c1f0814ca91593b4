package rules

import "skeleton/pkg/support"

// DefaultRule fills a blank attribute with a fallback value and always
// passes. It writes through the validator it is bound to, so it is wired
// through DefaultPredicate rather than by convention.
type DefaultRule struct {
	fallback  any
	validator Context
}

func NewDefaultRule(fallback any) *DefaultRule {
	return &DefaultRule{fallback: fallback}
}

func (r *DefaultRule) Name() string    { return "default" }
func (r *DefaultRule) Message() string { return "" }
func (r *DefaultRule) Implicit() bool  { return true }

func (r *DefaultRule) SetValidator(v Context) {
	r.validator = v
}

func (r *DefaultRule) Passes(attribute string, value any, _ []string, ctx Context) bool {
	if support.Filled(value) {
		return true
	}

	target := r.validator
	if target == nil {
		target = ctx
	}
	if target != nil {
		target.Set(attribute, r.fallback)
	}
	return true
}

// DefaultPredicate is the callback registered under the "default" name. The
// fallback is the first parameter, or the current value when none is given.
func DefaultPredicate(attribute string, value any, parameters []string, ctx Context) bool {
	var fallback any = value
	if len(parameters) > 0 {
		fallback = parameters[0]
	}

	rule := NewDefaultRule(fallback)
	rule.SetValidator(ctx)
	return rule.Passes(attribute, value, parameters, ctx)
}
