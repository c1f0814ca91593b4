package validation

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	pkgerrors "skeleton/pkg/errors"
)

// Errors holds the failure messages per attribute.
type Errors map[string][]string

func (e Errors) Add(attribute, message string) {
	e[attribute] = append(e[attribute], message)
}

// First returns the first message recorded for attribute.
func (e Errors) First(attribute string) string {
	if msgs := e[attribute]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) Error() string {
	var b strings.Builder
	for i, attr := range slices.Sorted(maps.Keys(e)) {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", attr, strings.Join(e[attr], ", "))
	}
	return b.String()
}

// AppError wraps the messages in errors.ErrValidation so callers can map
// it to a 422 response.
func (e Errors) AppError() *pkgerrors.Error {
	return pkgerrors.ErrValidation.WithCause(e).WithDetail("errors", map[string][]string(e))
}

// AsErrors extracts the per-attribute messages from a validation error.
func AsErrors(err error) (Errors, bool) {
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) {
		return nil, false
	}
	if fields, ok := appErr.Details["errors"].(map[string][]string); ok {
		return Errors(fields), true
	}
	return nil, false
}
