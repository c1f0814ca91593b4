package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	ns := Namespace{Prefix: "app.rules"}
	c := NewCatalog(ns)

	assert.Equal(t, []string{
		"app.rules.CamelCaseRule",
		"app.rules.CarNumberRule",
		"app.rules.DefaultRule",
		"app.rules.EvenNumberRule",
		"app.rules.PortRule",
		"app.rules.RequiredRule",
	}, c.TypeNames())

	v, ok := c.Resolve("app.rules.PortRule")
	require.True(t, ok)
	r, isRule := v.(Rule)
	require.True(t, isRule)
	assert.Equal(t, "port", r.Name())

	_, ok = c.Resolve("app.rules.MissingRule")
	assert.False(t, ok)
}

func TestCatalogResolveReturnsFreshValues(t *testing.T) {
	c := NewCatalog(Namespace{Prefix: "app.rules"})

	a, _ := c.Resolve("app.rules.DefaultRule")
	b, _ := c.Resolve("app.rules.DefaultRule")
	assert.NotSame(t, a, b)
}

func TestCatalogAddOverwrites(t *testing.T) {
	c := Catalog{}
	c.Add("x.Rule", func() any { return "not a rule" })
	c.Add("x.Rule", func() any { return NewPortRule() })

	v, ok := c.Resolve("x.Rule")
	require.True(t, ok)
	assert.IsType(t, &PortRule{}, v)
}
