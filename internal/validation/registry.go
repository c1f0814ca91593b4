// Package validation holds the rule registry and the validator that runs
// rule strings such as "required|port|default:8080" against input data.
package validation

import (
	"context"
	"maps"
	"slices"
	"sync"

	"skeleton/internal/logger"
	"skeleton/internal/rules"
	"skeleton/pkg/errors"
	"skeleton/pkg/metrics"
)

// Extension is a registered rule: the name used in rule strings, the
// failure message and the predicate.
type Extension struct {
	Name      string
	Message   string
	Implicit  bool
	Predicate rules.PredicateFunc
}

// Registry maps rule names to extensions. It is filled at boot and read
// concurrently afterwards.
type Registry struct {
	mu         sync.RWMutex
	extensions map[string]Extension
	closed     bool
	logger     logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.NopLogger()
	}
	return &Registry{
		extensions: make(map[string]Extension),
		logger:     log,
	}
}

// Extend registers a rule that is skipped for absent or blank attributes.
// A later registration under the same name replaces the earlier one.
func (r *Registry) Extend(name string, predicate rules.PredicateFunc, message string) error {
	return r.add(Extension{Name: name, Message: message, Predicate: predicate})
}

// ExtendImplicit registers a rule that runs even when the attribute is
// absent or blank.
func (r *Registry) ExtendImplicit(name string, predicate rules.PredicateFunc, message string) error {
	return r.add(Extension{Name: name, Message: message, Implicit: true, Predicate: predicate})
}

func (r *Registry) add(ext Extension) error {
	if ext.Name == "" || ext.Predicate == nil {
		return errors.ErrRuleMisconfigured.WithMessage("rule name and predicate are required").
			WithDetail("rule", ext.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errors.ErrRegistryClosed.WithDetail("rule", ext.Name)
	}

	if prev, ok := r.extensions[ext.Name]; ok {
		r.logger.Debugw("Overwriting validation rule",
			"rule", ext.Name,
			"was_implicit", prev.Implicit,
			"implicit", ext.Implicit,
		)
	}
	r.extensions[ext.Name] = ext
	metrics.SetRegisteredRules(len(r.extensions))
	return nil
}

func (r *Registry) Lookup(name string) (Extension, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext, ok := r.extensions[name]
	return ext, ok
}

// Names returns the registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.extensions))
}

// Extensions returns every registered extension sorted by name.
func (r *Registry) Extensions() []Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Extension, 0, len(r.extensions))
	for _, name := range slices.Sorted(maps.Keys(r.extensions)) {
		out = append(out, r.extensions[name])
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.extensions)
}

// Close drops every extension. Registering after Close fails with
// ErrRegistryClosed; closing twice is a no-op.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	clear(r.extensions)
	metrics.SetRegisteredRules(0)
	return nil
}

// Make prepares a validator over a copy of data. ruleset maps attributes to
// rule strings; messages overrides failure messages by "attribute.rule" or
// "rule".
func (r *Registry) Make(ctx context.Context, data map[string]any, ruleset map[string]string, messages map[string]string) *Validator {
	if ctx == nil {
		ctx = context.Background()
	}

	copied := make(map[string]any, len(data))
	maps.Copy(copied, data)

	return &Validator{
		ctx:      ctx,
		registry: r,
		data:     copied,
		ruleset:  ruleset,
		messages: messages,
	}
}
