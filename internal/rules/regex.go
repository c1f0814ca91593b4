package rules

import (
	"fmt"
	"regexp"

	"skeleton/pkg/support"
)

// RegexRule passes when the stringified value matches a pattern.
type RegexRule struct {
	name     string
	message  string
	pattern  *regexp.Regexp
	implicit bool
}

func NewRegexRule(name, message, pattern string) (*RegexRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern for rule %q: %w", name, err)
	}
	return &RegexRule{name: name, message: message, pattern: re}, nil
}

func MustRegexRule(name, message, pattern string) *RegexRule {
	r, err := NewRegexRule(name, message, pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// WithImplicit returns a copy that runs on blank input too.
func (r *RegexRule) WithImplicit(implicit bool) *RegexRule {
	cp := *r
	cp.implicit = implicit
	return &cp
}

func (r *RegexRule) Name() string    { return r.name }
func (r *RegexRule) Message() string { return r.message }
func (r *RegexRule) Implicit() bool  { return r.implicit }
func (r *RegexRule) Pattern() string { return r.pattern.String() }

func (r *RegexRule) Passes(_ string, value any, _ []string, _ Context) bool {
	s, ok := support.Stringify(value)
	if !ok {
		return false
	}
	return r.pattern.MatchString(s)
}
