package ai

import (
	"context"
	"iter"
)

// opencode reads the prompt from stdin and takes the model as -m.
type opencode struct{ command }

func (opencode) HasCatalog() bool { return true }

func (p opencode) Invocation(req Request) Invocation {
	args := []string{"run"}
	if req.Agent != "" {
		args = append(args, "--agent", req.Agent)
	}
	if req.Model != "" {
		args = append(args, "-m", req.Model)
	}
	return Invocation{Args: args, Stdin: req.Prompt, Piped: true}
}

func (p opencode) ListModels(ctx context.Context) iter.Seq[string] {
	return catalog(ctx, p.binary, []string{"models"}, false)
}

// ollama reads the prompt from stdin and takes the model as a positional argument.
type ollama struct{ command }

func (ollama) HasCatalog() bool { return true }

func (p ollama) Invocation(req Request) Invocation {
	args := []string{"run"}
	if req.Model != "" {
		args = append(args, req.Model)
	}
	return Invocation{Args: args, Stdin: req.Prompt, Piped: true}
}

// ListModels parses `ollama list`, which prints a NAME/ID/SIZE header first.
func (p ollama) ListModels(ctx context.Context) iter.Seq[string] {
	return catalog(ctx, p.binary, []string{"list"}, true)
}

// claude runs in print mode with the prompt on stdin.
type claude struct{ command }

func (claude) HasCatalog() bool { return false }

func (claude) Invocation(req Request) Invocation {
	return Invocation{Args: []string{"-p"}, Stdin: req.Prompt, Piped: true}
}

func (claude) ListModels(ctx context.Context) iter.Seq[string] { return placeholderModels(ctx) }

// copilot takes the whole prompt through -p.
type copilot struct{ command }

func (copilot) HasCatalog() bool { return false }

func (copilot) Invocation(req Request) Invocation {
	return Invocation{Args: []string{"-p", req.Prompt}}
}

func (copilot) ListModels(ctx context.Context) iter.Seq[string] { return placeholderModels(ctx) }
