package support

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "skeleton/pkg/errors"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestEnvExplode(t *testing.T) {
	t.Setenv("SKELETON_TEST_LIST", "a,b,c")

	assert.Equal(t, []string{"a", "b", "c"}, EnvExplode("SKELETON_TEST_LIST", nil, ",", 0))
	assert.Equal(t, []string{"a", "b,c"}, EnvExplode("SKELETON_TEST_LIST", nil, ",", 2))

	unsetEnv(t, "SKELETON_TEST_MISSING")
	assert.Equal(t, []string{"x"}, EnvExplode("SKELETON_TEST_MISSING", []string{"x"}, ",", 0))
}

func TestEnvGetCSV(t *testing.T) {
	t.Setenv("SKELETON_TEST_CSV", `a,"b,c", d`)

	got, err := EnvGetCSV("SKELETON_TEST_CSV", nil, ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b,c", "d"}, got)

	t.Setenv("SKELETON_TEST_CSV", "x;y")
	got, err = EnvGetCSV("SKELETON_TEST_CSV", nil, ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)

	unsetEnv(t, "SKELETON_TEST_MISSING")
	got, err = EnvGetCSV("SKELETON_TEST_MISSING", []string{"def"}, ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"def"}, got)
}

func TestEnvJSONDecode(t *testing.T) {
	t.Setenv("SKELETON_TEST_JSON", `{"a":1,"b":[true,"x"]}`)

	got, err := EnvJSONDecode("SKELETON_TEST_JSON", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1), "b": []any{true, "x"}}, got)

	t.Setenv("SKELETON_TEST_JSON", `{"a":`)
	_, err = EnvJSONDecode("SKELETON_TEST_JSON", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidJSON)

	unsetEnv(t, "SKELETON_TEST_MISSING")
	got, err = EnvJSONDecode("SKELETON_TEST_MISSING", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
}

func TestIsJSON(t *testing.T) {
	assert.True(t, IsJSON(`{"a":1}`))
	assert.True(t, IsJSON(`[1,2]`))
	assert.True(t, IsJSON(`"text"`))
	assert.False(t, IsJSON(`{a:1}`))
	assert.False(t, IsJSON(``))
}

func TestErrorChain(t *testing.T) {
	root := errors.New("connection refused")
	mid := fmt.Errorf("dial: %w", root)
	top := pkgerrors.ErrInternal.WithCause(mid)

	chain := ErrorChain(top)
	require.Len(t, chain, 3)
	assert.Equal(t, error(top), chain[0])
	assert.Equal(t, mid, chain[1])
	assert.Equal(t, root, chain[2])

	assert.Nil(t, ErrorChain(nil))
}
