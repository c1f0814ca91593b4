package support

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, EnvironmentCLI, Environment(ctx))
	assert.Equal(t, EnvironmentWeb, Environment(WithWebEnvironment(ctx)))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestHomeDir(t *testing.T) {
	t.Setenv("HOME", "/tmp/skeleton-home")
	assert.Equal(t, "/tmp/skeleton-home", HomeDir())
}

func TestResourceUsageString(t *testing.T) {
	u := ResourceUsage{Duration: 1234 * time.Millisecond, PeakMemory: 12 * 1024 * 1024}
	assert.Equal(t, "Time: 00:01.234, Memory: 12.00 MB", u.String())

	u = ResourceUsage{Duration: time.Hour + 2*time.Minute + 3456*time.Millisecond, PeakMemory: 512}
	assert.Equal(t, "Time: 01:02:03.456, Memory: 512 bytes", u.String())
}

func TestCatchResourceUsage(t *testing.T) {
	boom := errors.New("boom")

	usage, err := CatchResourceUsage(context.Background(), func() error {
		time.Sleep(5 * time.Millisecond)
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.GreaterOrEqual(t, usage.Duration, 5*time.Millisecond)
	assert.Positive(t, usage.PeakMemory)
}
