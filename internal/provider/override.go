package provider

import "skeleton/internal/rules"

// overridden applies the name, message and implicit flag of a builtin
// definition file to a catalog rule.
type overridden struct {
	rules.Rule
	name     string
	message  string
	implicit bool
}

func overrideRule(r rules.Rule, def rules.Definition) rules.Rule {
	if def.Name == "" && def.Message == "" && !def.Implicit {
		return r
	}

	o := &overridden{
		Rule:     r,
		name:     r.Name(),
		message:  r.Message(),
		implicit: def.Implicit || rules.IsImplicit(r),
	}
	if def.Name != "" {
		o.name = def.Name
	}
	if def.Message != "" {
		o.message = def.Message
	}
	return o
}

func (o *overridden) Name() string    { return o.name }
func (o *overridden) Message() string { return o.message }
func (o *overridden) Implicit() bool  { return o.implicit }
