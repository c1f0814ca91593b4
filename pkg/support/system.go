package support

import (
	"context"
	"io"
	"os"
	"os/user"

	"github.com/mattn/go-isatty"
)

const (
	EnvironmentCLI = "cli"
	EnvironmentWeb = "web"
)

type environmentKey struct{}

// WithWebEnvironment marks ctx as belonging to an HTTP request.
func WithWebEnvironment(ctx context.Context) context.Context {
	return context.WithValue(ctx, environmentKey{}, EnvironmentWeb)
}

// Environment returns "web" inside an HTTP request and "cli" otherwise.
func Environment(ctx context.Context) string {
	if ctx != nil {
		if env, ok := ctx.Value(environmentKey{}).(string); ok {
			return env
		}
	}
	return EnvironmentCLI
}

func HomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil && dir != "" {
		return dir
	}
	if u, err := user.Current(); err == nil {
		return u.HomeDir
	}
	return ""
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
