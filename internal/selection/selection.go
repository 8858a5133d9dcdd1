// Package selection decides which provider and model serve an invocation.
package selection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/chainguard-dev/clog"

	"github.com/hoanghonghuy/gitscribe/internal/ai"
)

var (
	ErrNoProviders        = errors.New("no providers found")
	ErrAmbiguousProvider  = errors.New("multiple providers available, specify one with --provider")
	ErrNoProviderSelected = errors.New("no provider selected")
	ErrNoModel            = errors.New("no model specified for non-interactive mode")
)

// Chooser picks one of options. initial is pre-selected when it is one of
// the options. An empty result means the user cancelled.
type Chooser interface {
	Choose(ctx context.Context, title string, options []string, initial string) (string, error)
}

// Options are the inputs shared by provider and model resolution.
type Options struct {
	Explicit       string // from flags or environment
	Default        string // from the config file
	NonInteractive bool
}

// SelectProvider returns the lowercased provider identifier for this run.
// Explicit and configured values are accepted without validation.
func SelectProvider(ctx context.Context, reg *ai.Registry, ch Chooser, opts Options) (string, error) {
	log := clog.FromContext(ctx)

	if name := strings.TrimSpace(opts.Explicit); name != "" {
		return strings.ToLower(name), nil
	}
	if name := strings.TrimSpace(opts.Default); name != "" {
		log.Debugf("using configured provider %s", name)
		return strings.ToLower(name), nil
	}

	available := reg.ListAvailable()
	switch len(available) {
	case 0:
		return "", fmt.Errorf("%w: install one of %s", ErrNoProviders, strings.Join(reg.Names(), ", "))
	case 1:
		log.Debugf("auto-selected the only available provider %s", available[0].Name())
		return available[0].Name(), nil
	}

	names := make([]string, 0, len(available))
	for _, p := range available {
		names = append(names, p.Name())
	}
	if opts.NonInteractive {
		return "", fmt.Errorf("%w (available: %s)", ErrAmbiguousProvider, strings.Join(names, ", "))
	}

	choice, err := ch.Choose(ctx, "Select a provider", names, "")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoProviderSelected, err)
	}
	if choice == "" {
		return "", ErrNoProviderSelected
	}
	return choice, nil
}

// ResolveModel returns the model for the already selected provider. Only
// catalog-backed providers take a model; for the rest it is always empty.
// reg may not know name, in which case the provider has no model either.
func ResolveModel(ctx context.Context, reg *ai.Registry, name string, ch Chooser, opts Options) (string, error) {
	p, err := reg.Lookup(name)
	if err != nil || !p.HasCatalog() {
		return "", nil
	}

	if opts.Explicit != "" {
		return opts.Explicit, nil
	}

	model := opts.Default
	if opts.NonInteractive {
		if model == "" {
			return "", fmt.Errorf("%w: pass --model or set models.%s in the config file", ErrNoModel, name)
		}
		return model, nil
	}

	models := slices.Collect(p.ListModels(ctx))
	if len(models) == 0 {
		clog.FromContext(ctx).Debugf("%s reported no models, keeping %q", name, model)
		return model, nil
	}

	choice, err := ch.Choose(ctx, fmt.Sprintf("Select a %s model", name), models, model)
	if err != nil {
		clog.FromContext(ctx).Debugf("model chooser unavailable: %v", err)
		return model, nil
	}
	if choice == "" {
		return model, nil
	}
	return choice, nil
}
