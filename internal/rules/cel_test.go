package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	celeval "skeleton/pkg/cel"
)

func TestCELRule(t *testing.T) {
	ev, err := celeval.NewEvaluator()
	require.NoError(t, err)

	prefixed, err := NewCELRule(ev, "prefixed", "The :attribute must start with :input.",
		`size(parameters) > 0 && string(value).startsWith(parameters[0])`, false)
	require.NoError(t, err)

	assert.Equal(t, "prefixed", prefixed.Name())
	assert.False(t, prefixed.Implicit())
	assert.True(t, prefixed.Passes("sku", "INV-1", []string{"INV-"}, nil))
	assert.False(t, prefixed.Passes("sku", "ORD-1", []string{"INV-"}, nil))
	assert.False(t, prefixed.Passes("sku", "INV-1", nil, nil))
}

func TestCELRuleReadsData(t *testing.T) {
	ev, err := celeval.NewEvaluator()
	require.NoError(t, err)

	confirmed, err := NewCELRule(ev, "confirmed", "", `has(data.password) && value == data.password`, true)
	require.NoError(t, err)
	assert.True(t, confirmed.Implicit())

	ctx := newMapContext(map[string]any{"password": "s3cret"})
	assert.True(t, confirmed.Passes("password_confirmation", "s3cret", nil, ctx))
	assert.False(t, confirmed.Passes("password_confirmation", "other", nil, ctx))
}

func TestCELRuleEvaluationErrorFails(t *testing.T) {
	ev, err := celeval.NewEvaluator()
	require.NoError(t, err)

	r, err := NewCELRule(ev, "range", "", `double(value) >= 1.0`, false)
	require.NoError(t, err)

	assert.False(t, r.Passes("n", []string{"x"}, nil, nil))
}

func TestNewCELRuleRejectsNonBool(t *testing.T) {
	ev, err := celeval.NewEvaluator()
	require.NoError(t, err)

	_, err = NewCELRule(ev, "size", "", `size(parameters)`, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size")
}
