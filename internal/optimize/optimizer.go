// Package optimize implements optimize:all: refresh the autoload index and
// the framework caches in a fixed order.
package optimize

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"skeleton/internal/config"
	"skeleton/internal/constants"
	"skeleton/internal/logger"
	"skeleton/pkg/logging"
	"skeleton/pkg/metrics"
	"skeleton/pkg/support"
	"skeleton/pkg/tracing"
)

const tracerName = "skeleton/optimize"

type Status int

const (
	StatusSuccess Status = constants.ExitSuccess
	StatusFailure Status = constants.ExitFailure
	StatusInvalid Status = constants.ExitInvalid
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusInvalid:
		return "invalid"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

type Result struct {
	Status Status
	Usage  support.ResourceUsage
	// Failed names the step that stopped the run.
	Failed string
	Err    error
}

type Optimizer struct {
	steps  []Step
	logger logger.Logger
}

// New builds the standard sequence: the autoload command, then every cache
// step run through the artisan command.
func New(cfg config.OptimizeConfig, log logger.Logger) *Optimizer {
	steps := []Step{NewShellStep("autoload", cfg.AutoloadCommand, cfg.WorkingDir)}
	for _, step := range constants.CacheSteps {
		steps = append(steps, NewShellStep(step, cfg.Artisan+" "+step, cfg.WorkingDir))
	}
	return NewWithSteps(steps, log)
}

func NewWithSteps(steps []Step, log logger.Logger) *Optimizer {
	if log == nil {
		log = logger.NopLogger()
	}
	return &Optimizer{steps: steps, logger: log}
}

func (o *Optimizer) Steps() []Step {
	return o.steps
}

// Run executes the steps in order and stops at the first failure. Outside
// production it refuses to run unless force is set, and touches nothing.
func (o *Optimizer) Run(ctx context.Context, out io.Writer, force, production bool) Result {
	if !production && !force {
		o.logger.WarnwCtx(ctx, "Refusing to optimize outside production without --force")
		return Result{Status: StatusInvalid}
	}

	var failed string
	usage, err := support.CatchResourceUsage(ctx, func() error {
		for _, step := range o.steps {
			start := time.Now()
			stepCtx := logging.WithStep(ctx, step.Name())
			o.logger.InfowCtx(stepCtx, "Running optimize step")

			err := tracing.Run(stepCtx, tracerName, "optimize "+step.Name(), func(ctx context.Context) error {
				return step.Run(ctx, out)
			}, attribute.String("optimize.step", step.Name()))
			if err != nil {
				metrics.ObserveOptimizeStep(step.Name(), "failed", time.Since(start))
				failed = step.Name()
				return err
			}
			metrics.ObserveOptimizeStep(step.Name(), "succeeded", time.Since(start))
		}
		return nil
	})

	if err != nil {
		o.logger.ErrorwCtx(ctx, "Optimize step failed", "step", failed, "error", err)
		writeBlock(out, "ERROR", err.Error(), colorError)
		return Result{Status: StatusFailure, Usage: usage, Failed: failed, Err: err}
	}

	o.logger.InfowCtx(ctx, "Optimize completed", "duration_ms", usage.Duration.Milliseconds())
	writeBlock(out, "OK", usage.String(), colorSuccess)
	return Result{Status: StatusSuccess, Usage: usage}
}

const (
	colorSuccess = "\033[30;42m"
	colorError   = "\033[37;41m"
	colorReset   = "\033[39;49m"
)

// writeBlock prints a "[OK] message" block, colored on terminals only.
func writeBlock(out io.Writer, label, message, color string) {
	if out == nil {
		return
	}

	line := fmt.Sprintf(" [%s] %s ", label, message)
	if support.IsTerminal(out) {
		line = color + line + colorReset
	}
	fmt.Fprintf(out, "\n%s\n\n", line)
}
