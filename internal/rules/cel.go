package rules

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	celeval "skeleton/pkg/cel"
)

// CELRule evaluates a boolean CEL expression over attribute, value,
// parameters and data. Evaluation errors count as a failed check.
type CELRule struct {
	name       string
	message    string
	expression string
	implicit   bool
	evaluator  *celeval.Evaluator
	program    cel.Program
}

func NewCELRule(evaluator *celeval.Evaluator, name, message, expression string, implicit bool) (*CELRule, error) {
	program, err := evaluator.CompileRule(expression)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}

	return &CELRule{
		name:       name,
		message:    message,
		expression: expression,
		implicit:   implicit,
		evaluator:  evaluator,
		program:    program,
	}, nil
}

func (r *CELRule) Name() string       { return r.name }
func (r *CELRule) Message() string    { return r.message }
func (r *CELRule) Implicit() bool     { return r.implicit }
func (r *CELRule) Expression() string { return r.expression }

func (r *CELRule) Passes(attribute string, value any, parameters []string, ctx Context) bool {
	evalCtx := context.Background()
	var data map[string]any
	if ctx != nil {
		evalCtx = ctx.Context()
		data = ctx.Data()
	}

	ok, err := r.evaluator.Evaluate(evalCtx, r.program, celeval.Input{
		Attribute:  attribute,
		Value:      value,
		Parameters: parameters,
		Data:       data,
	})
	return err == nil && ok
}
