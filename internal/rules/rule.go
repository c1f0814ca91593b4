// Package rules defines validation rules and the capabilities the service
// provider inspects before registering them.
//
// A rule reports its own name and message and exposes a predicate over
// (attribute, value, parameters, context). Optional capabilities change how a
// rule is registered:
//
//   - ImplicitRule: runs even when the attribute is absent or blank.
//   - DataAwareRule / ValidatorAwareRule: receive the data or the running
//     validator. These are not registered by convention and must be wired
//     explicitly (see the default rule).
package rules

import (
	"context"
	"strings"
	"unicode"
)

// Context is the view of a running validation a predicate may use.
type Context interface {
	Context() context.Context
	Data() map[string]any
	Get(attribute string) (any, bool)
	Set(attribute string, value any)
}

// PredicateFunc is the callable form of a rule.
type PredicateFunc func(attribute string, value any, parameters []string, ctx Context) bool

type Rule interface {
	Name() string
	Message() string
	Passes(attribute string, value any, parameters []string, ctx Context) bool
}

type ImplicitRule interface {
	Rule
	Implicit() bool
}

type DataAwareRule interface {
	Rule
	SetData(data map[string]any)
}

type ValidatorAwareRule interface {
	Rule
	SetValidator(v Context)
}

// IsImplicit reports whether r declares itself implicit.
func IsImplicit(r Rule) bool {
	ir, ok := r.(ImplicitRule)
	return ok && ir.Implicit()
}

// NeedsContext reports whether r wants the data or the validator injected.
func NeedsContext(r Rule) bool {
	switch r.(type) {
	case DataAwareRule, ValidatorAwareRule:
		return true
	}
	return false
}

// Predicate adapts a rule to a PredicateFunc.
func Predicate(r Rule) PredicateFunc {
	return r.Passes
}

// NameFromType turns a type name such as "CarNumberRule" into the rule name
// "car_number".
func NameFromType(typeName string) string {
	stem := strings.TrimSuffix(typeName, "Rule")
	if stem == "" {
		stem = typeName
	}

	var b strings.Builder
	runes := []rune(stem)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
