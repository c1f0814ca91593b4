package rules

import "skeleton/pkg/support"

const (
	portPattern       = `^((6553[0-5])|(655[0-2][0-9])|(65[0-4][0-9]{2})|(6[0-4][0-9]{3})|([1-5][0-9]{4})|([0-5]{0,5})|([0-9]{1,4}))$`
	carNumberPattern  = `^[A-Z]{2}[0-9]{2}[A-Z]{2}[0-9]{4}$`
	camelCasePattern  = `^(?:\p{Lu}?\p{Ll}+)(?:\p{Lu}\p{Ll}+)*$`
	evenNumberPattern = `^\d*[02468]$`
)

type PortRule struct{ *RegexRule }

func NewPortRule() *PortRule {
	return &PortRule{MustRegexRule("port", "The :attribute must be a valid port.", portPattern)}
}

type CarNumberRule struct{ *RegexRule }

func NewCarNumberRule() *CarNumberRule {
	return &CarNumberRule{MustRegexRule("car_number", "The :attribute must be a valid car number.", carNumberPattern)}
}

type CamelCaseRule struct{ *RegexRule }

func NewCamelCaseRule() *CamelCaseRule {
	return &CamelCaseRule{MustRegexRule("camel_case", "The :attribute must be camel case.", camelCasePattern)}
}

type EvenNumberRule struct{ *RegexRule }

func NewEvenNumberRule() *EvenNumberRule {
	return &EvenNumberRule{MustRegexRule("even_number", "The :attribute must be an even number.", evenNumberPattern)}
}

// RequiredRule fails on absent or blank input.
type RequiredRule struct{}

func NewRequiredRule() *RequiredRule { return &RequiredRule{} }

func (RequiredRule) Name() string    { return "required" }
func (RequiredRule) Message() string { return "The :attribute field is required." }
func (RequiredRule) Implicit() bool  { return true }

func (RequiredRule) Passes(_ string, value any, _ []string, _ Context) bool {
	return support.Filled(value)
}
