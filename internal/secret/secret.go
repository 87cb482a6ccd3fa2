// Package secret resolves the model provider credential at invocation time,
// so handlers never depend on a key bound at process startup.
package secret

import (
	"context"
	"fmt"
	"os"
)

// Source yields the model provider API key for one invocation.
type Source interface {
	APIKey(ctx context.Context) (string, error)
}

// Static is a fixed key, typically injected through configuration.
type Static string

// APIKey returns the fixed key.
func (s Static) APIKey(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("api key is empty")
	}
	return string(s), nil
}

// Env reads the key from an environment variable on every call, so a rotated
// secret takes effect without a restart.
type Env struct {
	Var string
}

// APIKey reads the environment variable.
func (e Env) APIKey(context.Context) (string, error) {
	v := os.Getenv(e.Var)
	if v == "" {
		return "", fmt.Errorf("environment variable %s is not set", e.Var)
	}
	return v, nil
}
