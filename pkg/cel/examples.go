package cel

// RuleExpressionExamples lists expressions accepted by rule definitions of
// kind "cel".
var RuleExpressionExamples = map[string]string{
	"non_empty_string": `type(value) == string && value != ""`,
	"numeric_range":    `double(value) >= 1.0 && double(value) <= 100.0`,
	"one_of_params":    `string(value) in parameters`,
	"lowercase":        `string(value) == string(value).lowerAscii()`,
	"prefixed":         `size(parameters) > 0 && string(value).startsWith(parameters[0])`,
	"confirmed":        `has(data.password) && value == data.password`,
	"matches":          `string(value).matches("^[a-z0-9-]+$")`,
}
