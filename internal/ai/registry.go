package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownProvider indicates an identifier outside the supported set.
var ErrUnknownProvider = errors.New("unknown provider")

// Registry is an ordered, fixed set of providers.
type Registry struct {
	providers []Provider
}

// NewRegistry returns a registry over providers in the given priority order.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Default returns the supported providers in discovery order.
func Default() *Registry {
	return NewRegistry(
		opencode{command{name: "opencode", binary: "opencode"}},
		ollama{command{name: "ollama", binary: "ollama"}},
		claude{command{name: "claude", binary: "claude"}},
		copilot{command{name: "copilot", binary: "copilot"}},
	)
}

// Lookup returns the provider registered under name (case-insensitive).
func (r *Registry) Lookup(name string) (Provider, error) {
	canonical := strings.ToLower(strings.TrimSpace(name))
	for _, p := range r.providers {
		if p.Name() == canonical {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownProvider, name, strings.Join(r.Names(), ", "))
}

// ListAvailable returns the providers whose command is installed, in priority order.
func (r *Registry) ListAvailable() []Provider {
	var out []Provider
	for _, p := range r.providers {
		if p.Available() {
			out = append(out, p)
		}
	}
	return out
}

// Names returns every registered identifier in priority order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}
