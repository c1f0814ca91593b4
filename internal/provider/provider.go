// Package provider wires validation rules into the registry at boot: the
// compiled-in catalog, callback rules, rule definition files found in the
// rules directory and any extra rules the caller supplies.
package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"skeleton/internal/logger"
	"skeleton/internal/rules"
	celeval "skeleton/pkg/cel"
	"skeleton/pkg/errors"
)

const defaultRegexMessage = "The :attribute format is invalid."

// Registrar is the registry surface the provider writes to.
type Registrar interface {
	Extend(name string, predicate rules.PredicateFunc, message string) error
	ExtendImplicit(name string, predicate rules.PredicateFunc, message string) error
}

type Options struct {
	// Path is the rules directory. Empty disables discovery.
	Path      string
	Namespace string
	Extension string
	// Pattern matches file stems, e.g. "*Rule".
	Pattern string
	Exclude []string
}

// Report counts what a boot registered and skipped.
type Report struct {
	Registered int
	Skipped    int
	Files      int
}

type Provider struct {
	registrar Registrar
	catalog   rules.Catalog
	evaluator *celeval.Evaluator
	opts      Options
	logger    logger.Logger
	report    Report
}

func New(registrar Registrar, catalog rules.Catalog, evaluator *celeval.Evaluator, opts Options, log logger.Logger) *Provider {
	if log == nil {
		log = logger.NopLogger()
	}
	return &Provider{
		registrar: registrar,
		catalog:   catalog,
		evaluator: evaluator,
		opts:      opts,
		logger:    log,
	}
}

// Boot registers builtins, callback rules, definition files and extra rules
// in that order. Later registrations replace earlier ones with the same name.
// Any error is fatal: the registry must not be used half populated.
func (p *Provider) Boot(ctx context.Context, extra ...rules.Rule) (Report, error) {
	p.report = Report{}

	if err := p.RegisterBuiltins(); err != nil {
		return p.report, err
	}

	if err := p.ExtendFromCallbacks(); err != nil {
		return p.report, err
	}

	if p.opts.Path != "" {
		if _, err := p.ExtendFromPath(p.opts.Path); err != nil {
			return p.report, err
		}
	}

	if err := p.Register(extra...); err != nil {
		return p.report, err
	}

	p.logger.InfowCtx(ctx, "Validation rules registered",
		"registered", p.report.Registered,
		"skipped", p.report.Skipped,
		"definition_files", p.report.Files,
	)
	return p.report, nil
}

// RegisterBuiltins registers every catalog entry.
func (p *Provider) RegisterBuiltins() error {
	for _, typeName := range p.catalog.TypeNames() {
		v, _ := p.catalog.Resolve(typeName)
		if err := p.register(typeName, v); err != nil {
			return err
		}
	}
	return nil
}

// ExtendFromCallbacks registers rules that are plain predicates rather than
// rule types. The default rule needs the running validator, so it lives here.
func (p *Provider) ExtendFromCallbacks() error {
	if err := p.registrar.ExtendImplicit(rules.NewDefaultRule(nil).Name(), rules.DefaultPredicate, ""); err != nil {
		return fmt.Errorf("register default rule: %w", err)
	}
	p.report.Registered++
	return nil
}

// Register registers rules built by the caller, such as the database backed
// exists rule.
func (p *Provider) Register(rs ...rules.Rule) error {
	for _, r := range rs {
		if err := p.register(fmt.Sprintf("%T", r), r); err != nil {
			return err
		}
	}
	return nil
}

// ExtendFromPath registers the rule definition files directly inside dir whose
// stem matches the pattern and is not excluded. It returns the number of rules
// registered. A directory without matching files registers nothing.
func (p *Provider) ExtendFromPath(dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return 0, errors.ErrRuleMisconfigured.
			WithMessage("rules directory is not readable").
			WithDetail("path", dir).
			WithCause(err)
	}
	if !info.IsDir() {
		return 0, errors.ErrRuleMisconfigured.
			WithMessage("rules path is not a directory").
			WithDetail("path", dir)
	}

	files, err := p.discover(dir)
	if err != nil {
		return 0, err
	}

	ns := rules.Namespace{Root: dir, Prefix: p.opts.Namespace, Ext: p.opts.Extension}

	before := p.report.Registered
	for _, file := range files {
		p.report.Files++
		v, err := p.load(ns, file)
		if err != nil {
			return p.report.Registered - before, err
		}
		if err := p.register(file, v); err != nil {
			return p.report.Registered - before, err
		}
	}

	return p.report.Registered - before, nil
}

func (p *Provider) discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.ErrRuleMisconfigured.WithMessage("cannot list rules directory").
			WithDetail("path", dir).
			WithCause(err)
	}

	if !doublestar.ValidatePattern(p.opts.Pattern) {
		return nil, errors.ErrRuleMisconfigured.WithMessage("invalid rules pattern").
			WithDetail("pattern", p.opts.Pattern)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		stem, ok := strings.CutSuffix(entry.Name(), p.opts.Extension)
		if !ok {
			continue
		}

		matched, err := doublestar.Match(p.opts.Pattern, stem)
		if err != nil {
			return nil, errors.ErrRuleMisconfigured.WithMessage("invalid rules pattern").
				WithDetail("pattern", p.opts.Pattern).
				WithCause(err)
		}
		if !matched || slices.Contains(p.opts.Exclude, stem) {
			continue
		}

		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}

func (p *Provider) load(ns rules.Namespace, file string) (any, error) {
	misconfigured := errors.ErrRuleMisconfigured.WithDetail("file", file)

	rel, err := filepath.Rel(ns.Root, file)
	if err != nil {
		return nil, misconfigured.WithCause(err)
	}

	typeName, err := ns.TypeName(rel)
	if err != nil {
		return nil, misconfigured.WithCause(err)
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return nil, misconfigured.WithCause(err)
	}

	def, err := rules.ParseDefinition(content)
	if err != nil {
		return nil, misconfigured.WithCause(err)
	}

	name := def.Name
	if name == "" {
		name = rules.NameFromType(rules.Short(typeName))
	}

	switch def.Kind {
	case rules.KindRegex:
		message := def.Message
		if message == "" {
			message = defaultRegexMessage
		}
		r, err := rules.NewRegexRule(name, message, def.Pattern)
		if err != nil {
			return nil, misconfigured.WithCause(err)
		}
		return r.WithImplicit(def.Implicit), nil

	case rules.KindCEL:
		if p.evaluator == nil {
			return nil, misconfigured.WithMessage("cel rules are not enabled")
		}
		r, err := rules.NewCELRule(p.evaluator, name, def.Message, def.Expression, def.Implicit)
		if err != nil {
			return nil, misconfigured.WithCause(err)
		}
		return r, nil
	}

	v, ok := p.catalog.Resolve(typeName)
	if !ok {
		return nil, misconfigured.
			WithMessage("rule type " + typeName + " is not in the catalog").
			WithDetail("type", typeName)
	}

	if r, isRule := v.(rules.Rule); isRule && !rules.NeedsContext(r) {
		return overrideRule(r, def), nil
	}
	return v, nil
}

func (p *Provider) register(source string, v any) error {
	r, ok := v.(rules.Rule)
	if !ok {
		return errors.ErrRuleMisconfigured.
			WithMessage(fmt.Sprintf("%s does not implement a validation rule", source)).
			WithDetail("source", source).
			WithDetail("type", fmt.Sprintf("%T", v))
	}

	if rules.NeedsContext(r) {
		p.logger.Debugw("Skipping rule that needs data or validator injection",
			"source", source,
			"rule", r.Name(),
		)
		p.report.Skipped++
		return nil
	}

	var err error
	if rules.IsImplicit(r) {
		err = p.registrar.ExtendImplicit(r.Name(), rules.Predicate(r), r.Message())
	} else {
		err = p.registrar.Extend(r.Name(), rules.Predicate(r), r.Message())
	}
	if err != nil {
		return fmt.Errorf("register rule %s from %s: %w", r.Name(), source, err)
	}

	p.logger.Debugw("Registered validation rule",
		"source", source,
		"rule", r.Name(),
		"implicit", rules.IsImplicit(r),
	)
	p.report.Registered++
	return nil
}
