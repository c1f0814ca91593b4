package rules

import (
	"maps"
	"slices"
)

// Factory constructs a fresh rule value. It returns any so that a catalog
// entry that does not implement Rule is caught at boot, not at compile time
// of the caller.
type Factory func() any

// Catalog is the compile-time registry of rule types keyed by type
// identifier.
type Catalog map[string]Factory

// NewCatalog returns the built-in rules qualified under ns.
func NewCatalog(ns Namespace) Catalog {
	c := Catalog{}
	c.Add(ns.Qualify("PortRule"), func() any { return NewPortRule() })
	c.Add(ns.Qualify("CarNumberRule"), func() any { return NewCarNumberRule() })
	c.Add(ns.Qualify("CamelCaseRule"), func() any { return NewCamelCaseRule() })
	c.Add(ns.Qualify("EvenNumberRule"), func() any { return NewEvenNumberRule() })
	c.Add(ns.Qualify("RequiredRule"), func() any { return NewRequiredRule() })
	c.Add(ns.Qualify("DefaultRule"), func() any { return NewDefaultRule(nil) })
	return c
}

func (c Catalog) Add(typeName string, f Factory) {
	c[typeName] = f
}

// Resolve instantiates the type registered under typeName.
func (c Catalog) Resolve(typeName string) (any, bool) {
	f, ok := c[typeName]
	if !ok {
		return nil, false
	}
	return f(), true
}

// TypeNames returns the registered identifiers in sorted order.
func (c Catalog) TypeNames() []string {
	return slices.Sorted(maps.Keys(c))
}
