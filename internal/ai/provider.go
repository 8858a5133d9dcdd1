package ai

import (
	"context"
	"iter"
	"os/exec"
)

// ModelPlaceholder is the only model reported by providers without a catalog.
const ModelPlaceholder = "default"

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Provider defines a command-line generative text backend (e.g. opencode, ollama, claude).
type Provider interface {
	// Name returns the lowercase provider identifier.
	Name() string
	// Binary returns the executable invoked for this provider.
	Binary() string
	// HasCatalog reports whether the provider exposes a list of installed models.
	HasCatalog() bool
	// Available reports whether Binary can be located on this host.
	Available() bool
	// Invocation describes how to pass req to the provider.
	Invocation(req Request) Invocation
	// ListModels yields model identifiers. Listing failures yield nothing.
	ListModels(ctx context.Context) iter.Seq[string]
}

// Request is the input for a single provider call.
type Request struct {
	Prompt string
	Model  string // empty means provider default
	Agent  string // opencode only
}

// Invocation is the argv and stdin for one provider call.
type Invocation struct {
	Args  []string
	Stdin string
	Piped bool // write Stdin to the process
}

// command holds what every provider shares: an identifier and a binary.
type command struct {
	name   string
	binary string
}

func (c command) Name() string   { return c.name }
func (c command) Binary() string { return c.binary }

func (c command) Available() bool {
	_, err := lookPath(c.binary)
	return err == nil
}

// placeholderModels is the catalog of providers without a model concept.
func placeholderModels(context.Context) iter.Seq[string] {
	return func(yield func(string) bool) {
		yield(ModelPlaceholder)
	}
}
