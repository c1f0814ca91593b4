package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skeleton/internal/rules"
	pkgerrors "skeleton/pkg/errors"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry(nil)
	for _, r := range []rules.Rule{rules.NewPortRule(), rules.NewEvenNumberRule(), rules.NewCamelCaseRule()} {
		require.NoError(t, reg.Extend(r.Name(), rules.Predicate(r), r.Message()))
	}
	required := rules.NewRequiredRule()
	require.NoError(t, reg.ExtendImplicit(required.Name(), rules.Predicate(required), required.Message()))
	require.NoError(t, reg.ExtendImplicit("default", rules.DefaultPredicate, ""))
	return reg
}

func TestValidatorPasses(t *testing.T) {
	reg := newTestRegistry(t)

	data, err := reg.Make(context.Background(),
		map[string]any{"port": "8080", "count": 42},
		map[string]string{"port": "required|port", "count": "even_number"},
		nil,
	).Validate()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"port": "8080", "count": 42}, data)
}

func TestValidatorFailureMessages(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Make(context.Background(),
		map[string]any{"db_port": "99999", "count": 3},
		map[string]string{"db_port": "port", "count": "even_number", "name": "required"},
		nil,
	).Validate()

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, 422, pkgerrors.ToHTTPStatus(err))

	fields, ok := AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "The db port must be a valid port.", fields.First("db_port"))
	assert.Equal(t, "The count must be an even number.", fields.First("count"))
	assert.Equal(t, "The name field is required.", fields.First("name"))
	assert.Len(t, fields, 3)
}

func TestValidatorSkipsAbsentAndBlankForNonImplicitRules(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Make(context.Background(),
		map[string]any{"blank": "   "},
		map[string]string{"absent": "port", "blank": "port"},
		nil,
	).Validate()

	assert.NoError(t, err)
}

func TestValidatorChecksPresentNil(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Make(context.Background(),
		map[string]any{"port": nil},
		map[string]string{"port": "port"},
		nil,
	).Validate()

	fields, ok := AsErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "port")
}

func TestValidatorDefaultRule(t *testing.T) {
	reg := newTestRegistry(t)

	input := map[string]any{"port": ""}
	data, err := reg.Make(context.Background(),
		input,
		map[string]string{"port": "default:8080|port", "host": "default:localhost|required"},
		nil,
	).Validate()

	require.NoError(t, err)
	assert.Equal(t, "8080", data["port"])
	assert.Equal(t, "localhost", data["host"])
	assert.Equal(t, "", input["port"], "input map must not be modified")
}

func TestValidatorCustomMessages(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Make(context.Background(),
		map[string]any{"port": "99999", "other": "x"},
		map[string]string{"port": "port", "other": "port"},
		map[string]string{"port.port": "Port :input is out of range.", "port": "Not a port: :attribute."},
	).Validate()

	fields, ok := AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Port 99999 is out of range.", fields.First("port"))
	assert.Equal(t, "Not a port: other.", fields.First("other"))
}

func TestValidatorUnknownRule(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Make(context.Background(),
		map[string]any{"plate": "AB12CD3456"},
		map[string]string{"plate": "car_number"},
		nil,
	).Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrUnknownRule)
	assert.False(t, pkgerrors.IsValidation(err))
}

func TestValidatorRecoversPanickingRule(t *testing.T) {
	reg := newTestRegistry(t)
	require.NoError(t, reg.Extend("explode", func(string, any, []string, rules.Context) bool {
		panic("kaboom")
	}, ""))

	v := reg.Make(context.Background(), map[string]any{"x": 1}, map[string]string{"x": "explode"}, nil)

	_, err := v.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrInternal)
	assert.True(t, pkgerrors.IsFatal(err))
	assert.True(t, v.Fails())
}

type markerKey struct{}

func TestValidatorIsRuleContext(t *testing.T) {
	reg := NewRegistry(nil)

	var seen rules.Context
	require.NoError(t, reg.Extend("peek", func(_ string, _ any, _ []string, ctx rules.Context) bool {
		seen = ctx
		other, _ := ctx.Get("other")
		return other == "yes"
	}, ""))

	ctx := context.WithValue(context.Background(), markerKey{}, "marker")
	v := reg.Make(ctx, map[string]any{"field": 1, "other": "yes"}, map[string]string{"field": "peek"}, nil)

	_, err := v.Validate()
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "marker", seen.Context().Value(markerKey{}))
	assert.Equal(t, "yes", seen.Data()["other"])
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		raw        string
		wantName   string
		wantParams []string
	}{
		{raw: "required", wantName: "required"},
		{raw: "default:8080", wantName: "default", wantParams: []string{"8080"}},
		{raw: "exists:users,email", wantName: "exists", wantParams: []string{"users", "email"}},
		{raw: "default:", wantName: "default", wantParams: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			name, params := ParseRule(tt.raw)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestSplitRules(t *testing.T) {
	assert.Equal(t, []string{"required", "port", "default:80"}, SplitRules("required| port ||default:80"))
	assert.Nil(t, SplitRules(""))
}

func TestErrorsString(t *testing.T) {
	errs := Errors{}
	errs.Add("port", "bad port")
	errs.Add("name", "required")
	errs.Add("port", "too high")

	assert.Equal(t, "name: required; port: bad port, too high", errs.Error())
	assert.Equal(t, "bad port", errs.First("port"))
	assert.Equal(t, "", errs.First("missing"))
}
