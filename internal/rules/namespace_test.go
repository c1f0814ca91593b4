package rules

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceTypeName(t *testing.T) {
	root := t.TempDir()
	ns := Namespace{Root: root, Prefix: "app.rules", Ext: ".yaml"}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "absolute", path: filepath.Join(root, "PortRule.yaml"), want: "app.rules.PortRule"},
		{name: "relative", path: "PortRule.yaml", want: "app.rules.PortRule"},
		{name: "nested", path: filepath.Join("billing", "InvoiceRule.yaml"), want: "app.rules.billing.InvoiceRule"},
		{name: "outside root", path: filepath.Join(filepath.Dir(root), "PortRule.yaml"), wantErr: true},
		{name: "parent escape", path: filepath.Join("..", "PortRule.yaml"), wantErr: true},
		{name: "wrong extension", path: "PortRule.yml", wantErr: true},
		{name: "dotted stem", path: "Port.v2Rule.yaml", wantErr: true},
		{name: "root itself", path: root, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ns.TypeName(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamespaceRoundTrip(t *testing.T) {
	ns := Namespace{Root: t.TempDir(), Prefix: "app.rules", Ext: ".yaml"}

	paths := []string{
		"PortRule.yaml",
		"CarNumberRule.yaml",
		filepath.Join("billing", "InvoiceRule.yaml"),
		filepath.Join("a", "b", "c", "DeepRule.yaml"),
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			typeName, err := ns.TypeName(p)
			require.NoError(t, err)

			back, err := ns.Path(typeName)
			require.NoError(t, err)
			assert.Equal(t, p, back)

			again, err := ns.TypeName(back)
			require.NoError(t, err)
			assert.Equal(t, typeName, again)
		})
	}
}

func TestNamespacePathErrors(t *testing.T) {
	ns := Namespace{Root: "/srv/rules", Prefix: "app.rules", Ext: ".yaml"}

	_, err := ns.Path("other.rules.PortRule")
	assert.Error(t, err)

	_, err = ns.Path("app.rules.")
	assert.Error(t, err)

	_, err = ns.Path("app.rules.billing..InvoiceRule")
	assert.Error(t, err)
}

func TestQualifyAndShort(t *testing.T) {
	ns := Namespace{Prefix: "app.rules"}

	assert.Equal(t, "app.rules.PortRule", ns.Qualify("PortRule"))
	assert.Equal(t, "PortRule", Short("app.rules.PortRule"))
	assert.Equal(t, "PortRule", Short("PortRule"))
}
