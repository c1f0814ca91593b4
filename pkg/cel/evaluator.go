package cel

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
)

// Input is the activation a rule expression is evaluated against.
type Input struct {
	Attribute  string
	Value      interface{}
	Parameters []string
	Data       map[string]interface{}
}

type Evaluator struct {
	env *cel.Env
}

func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("attribute", cel.StringType),
		cel.Variable("value", cel.DynType),
		cel.Variable("parameters", cel.ListType(cel.StringType)),
		cel.Variable("data", cel.MapType(cel.StringType, cel.DynType)),
		ext.Strings(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Evaluator{env: env}, nil
}

func (e *Evaluator) ValidateExpression(expression string) error {
	_, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("CEL expression validation failed: %w", issues.Err())
	}
	return nil
}

// ValidateRuleExpression checks that expression compiles and yields a bool.
func (e *Evaluator) ValidateRuleExpression(expression string) error {
	_, err := e.compileBool(expression)
	return err
}

// CompileRule compiles a boolean rule expression into a reusable program.
func (e *Evaluator) CompileRule(expression string) (cel.Program, error) {
	ast, err := e.compileBool(expression)
	if err != nil {
		return nil, err
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return program, nil
}

func (e *Evaluator) compileBool(expression string) (*cel.Ast, error) {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile CEL expression: %w", issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("rule expression must return bool, got %v", ast.OutputType())
	}

	return ast, nil
}

// Evaluate runs a compiled rule program.
func (e *Evaluator) Evaluate(ctx context.Context, program cel.Program, in Input) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	params := in.Parameters
	if params == nil {
		params = []string{}
	}
	data := in.Data
	if data == nil {
		data = map[string]interface{}{}
	}

	result, _, err := program.ContextEval(ctx, map[string]interface{}{
		"attribute":  in.Attribute,
		"value":      in.Value,
		"parameters": params,
		"data":       data,
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate CEL expression: %w", err)
	}

	boolVal, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("CEL expression did not return bool, got %T", result.Value())
	}

	return boolVal, nil
}

// EvaluateExpression compiles and evaluates expression in one go.
func (e *Evaluator) EvaluateExpression(ctx context.Context, expression string, in Input) (bool, error) {
	program, err := e.CompileRule(expression)
	if err != nil {
		return false, err
	}
	return e.Evaluate(ctx, program, in)
}
