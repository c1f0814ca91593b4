package rules

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Namespace maps rule files under Root to dotted type identifiers under
// Prefix: <Root>/billing/InvoiceRule.yaml -> app.rules.billing.InvoiceRule.
// TypeName and Path are inverse for every path TypeName accepts.
type Namespace struct {
	Root   string
	Prefix string
	Ext    string
}

// TypeName derives the type identifier for path, which is either absolute
// (and must live under Root) or relative to Root.
func (n Namespace) TypeName(path string) (string, error) {
	rel := path
	if filepath.IsAbs(path) {
		root, err := filepath.Abs(n.Root)
		if err != nil {
			return "", fmt.Errorf("resolve root %s: %w", n.Root, err)
		}
		rel, err = filepath.Rel(root, path)
		if err != nil {
			return "", fmt.Errorf("path %s is not under %s: %w", path, root, err)
		}
	}

	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %s is not under %s", path, n.Root)
	}
	if !strings.HasSuffix(rel, n.Ext) {
		return "", fmt.Errorf("path %s does not have extension %s", path, n.Ext)
	}

	segments := strings.Split(strings.TrimSuffix(rel, n.Ext), "/")
	for _, s := range segments {
		if s == "" || strings.Contains(s, ".") {
			return "", fmt.Errorf("path %s has a segment that cannot form a type name: %q", path, s)
		}
	}

	return n.Prefix + "." + strings.Join(segments, "."), nil
}

// Path is the inverse of TypeName and returns the path relative to Root.
func (n Namespace) Path(typeName string) (string, error) {
	rest, ok := strings.CutPrefix(typeName, n.Prefix+".")
	if !ok || rest == "" {
		return "", fmt.Errorf("type %s is not in namespace %s", typeName, n.Prefix)
	}

	segments := strings.Split(rest, ".")
	for _, s := range segments {
		if s == "" {
			return "", fmt.Errorf("type %s has an empty segment", typeName)
		}
	}

	return filepath.FromSlash(strings.Join(segments, "/")) + n.Ext, nil
}

// Qualify returns the identifier of a type declared directly in the namespace.
func (n Namespace) Qualify(typeName string) string {
	return n.Prefix + "." + typeName
}

// Short returns the last segment of a type identifier.
func Short(typeName string) string {
	if i := strings.LastIndex(typeName, "."); i >= 0 {
		return typeName[i+1:]
	}
	return typeName
}
