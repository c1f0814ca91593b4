package validation

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"skeleton/internal/rules"
	"skeleton/pkg/errors"
	"skeleton/pkg/metrics"
	"skeleton/pkg/support"
)

const defaultMessage = "The :attribute is invalid."

// Validator runs a ruleset against one data set. It is the rules.Context
// handed to predicates, so rules may read and fill other attributes.
type Validator struct {
	ctx      context.Context
	registry *Registry
	data     map[string]any
	ruleset  map[string]string
	messages map[string]string
}

var _ rules.Context = (*Validator)(nil)

func (v *Validator) Context() context.Context { return v.ctx }
func (v *Validator) Data() map[string]any     { return v.data }

func (v *Validator) Get(attribute string) (any, bool) {
	value, ok := v.data[attribute]
	return value, ok
}

func (v *Validator) Set(attribute string, value any) {
	v.data[attribute] = value
}

// Validate evaluates attributes in sorted order and rules in the order they
// are written. It returns the validated data, which includes values filled
// in by rules such as default, or an ErrValidation carrying the messages.
// A rule name that is not registered fails with ErrUnknownRule.
func (v *Validator) Validate() (map[string]any, error) {
	start := time.Now()

	failures := Errors{}
	for _, attribute := range slices.Sorted(maps.Keys(v.ruleset)) {
		for _, part := range SplitRules(v.ruleset[attribute]) {
			name, params := ParseRule(part)

			ext, ok := v.registry.Lookup(name)
			if !ok {
				metrics.ObserveValidation(time.Since(start), "error")
				return nil, errors.ErrUnknownRule.
					WithMessage("rule "+name+" is not registered").
					WithDetail("rule", name).
					WithDetail("attribute", attribute)
			}

			value, present := v.Get(attribute)
			if !ext.Implicit && !validatable(value, present) {
				continue
			}

			passed, err := v.evaluate(ext, attribute, value, params)
			if err != nil {
				metrics.ObserveValidation(time.Since(start), "error")
				return nil, err
			}

			if passed {
				metrics.IncValidationRuleEvaluation(name, "pass")
				continue
			}
			metrics.IncValidationRuleEvaluation(name, "fail")
			failures.Add(attribute, v.message(ext, attribute, value))
		}
	}

	if len(failures) > 0 {
		metrics.ObserveValidation(time.Since(start), "failed")
		return nil, failures.AppError()
	}

	metrics.ObserveValidation(time.Since(start), "passed")
	return v.data, nil
}

// Fails runs Validate and reports whether it failed for any reason.
func (v *Validator) Fails() bool {
	_, err := v.Validate()
	return err != nil
}

func (v *Validator) evaluate(ext Extension, attribute string, value any, params []string) (passed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.RecoverPanic(r)
			if appErr, ok := err.(*errors.Error); ok {
				err = appErr.WithDetail("rule", ext.Name).WithDetail("attribute", attribute)
			}
		}
	}()

	return ext.Predicate(attribute, value, params, v), nil
}

func (v *Validator) message(ext Extension, attribute string, value any) string {
	msg, ok := v.messages[attribute+"."+ext.Name]
	if !ok {
		msg, ok = v.messages[ext.Name]
	}
	if !ok {
		msg = ext.Message
	}
	if msg == "" {
		msg = defaultMessage
	}

	input, _ := support.Stringify(value)
	return strings.NewReplacer(
		":attribute", strings.ReplaceAll(attribute, "_", " "),
		":input", input,
	).Replace(msg)
}

// validatable reports whether a non-implicit rule should run: the attribute
// is present and not a blank string. A present nil is still validated.
func validatable(value any, present bool) bool {
	if !present {
		return false
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

// SplitRules splits "required|port" into its rule parts.
func SplitRules(ruleString string) []string {
	var parts []string
	for _, part := range strings.Split(ruleString, "|") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// ParseRule splits "exists:users,email" into the rule name and parameters.
func ParseRule(part string) (string, []string) {
	name, rest, found := strings.Cut(part, ":")
	if !found {
		return name, nil
	}
	return name, strings.Split(rest, ",")
}
