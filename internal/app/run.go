package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chainguard-dev/clog"

	"github.com/hoanghonghuy/gitscribe/internal/ai"
	"github.com/hoanghonghuy/gitscribe/internal/chooser"
	"github.com/hoanghonghuy/gitscribe/internal/gitx"
	"github.com/hoanghonghuy/gitscribe/internal/invoke"
	"github.com/hoanghonghuy/gitscribe/internal/prompt"
	"github.com/hoanghonghuy/gitscribe/internal/selection"
)

var (
	ErrNoStagedChanges = errors.New("no staged changes. Run: git add -A")
	ErrNoNewCommits    = errors.New("no new commits to describe")
)

const (
	CommandCommit = "commit"
	CommandTag    = "tag"
)

// DefaultIgnores are never sent to a provider.
var DefaultIgnores = []string{
	"go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "Cargo.lock", "poetry.lock",
	"*.map", "*.svg", "*.min.js", "*.min.css",
}

// Config is everything one invocation needs. It is built once by the
// command layer and not modified afterwards.
type Config struct {
	Command string
	RepoArg string

	Provider        string // explicit, from flag or environment
	DefaultProvider string // from the config file
	Model           string
	DefaultModels   map[string]string
	Agent           string
	NonInteractive  bool

	Modes        prompt.Modes
	MaxDiffChars int
	IgnoredFiles []string // added to DefaultIgnores

	OutputPath string
	DumpPrompt bool

	// commit
	Apply bool

	// tag
	From      string
	CreateTag string
}

// Selection is the provider and model chosen for one run.
type Selection struct {
	Provider string
	Model    string
}

// App wires the pipeline to its collaborators.
type App struct {
	Registry *ai.Registry
	Chooser  selection.Chooser
	Stdout   io.Writer // artifacts only
	Stderr   io.Writer // progress, previews, notices

	// UI enables the spinner, previews and confirmation prompts.
	UI bool
}

// New returns an App bound to the host: installed providers, the terminal
// chooser, and the process streams.
func New(nonInteractive bool) *App {
	return &App{
		Registry: ai.Default(),
		Chooser:  chooser.Huh{},
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		UI:       !nonInteractive && chooser.Interactive(),
	}
}

func (a *App) Run(ctx context.Context, cfg Config) error {
	repoRoot, err := gitx.ResolveRepoRoot(ctx, cfg.RepoArg)
	if err != nil {
		return err
	}
	ctx = clog.WithLogger(ctx, clog.FromContext(ctx).With("repo", gitx.RepoNameFromRoot(repoRoot), "command", cfg.Command))

	// 1. Build the prompt; this fails before any provider is considered.
	var text string
	switch cfg.Command {
	case CommandCommit:
		data, err := buildCommitData(ctx, repoRoot, cfg)
		if err != nil {
			return err
		}
		text = prompt.Compose(prompt.CommitRules, cfg.Modes, data, prompt.CommitTrigger)
	case CommandTag:
		since, commits, err := gitx.CommitsSince(repoRoot, cfg.From)
		if err != nil {
			return err
		}
		if len(commits) == 0 {
			if since != "" {
				return fmt.Errorf("%w since %s", ErrNoNewCommits, since)
			}
			return ErrNoNewCommits
		}
		text = prompt.Compose(prompt.ReleaseRules, cfg.Modes, prompt.ReleaseData(since, commits), prompt.ReleaseTrigger)
	default:
		return fmt.Errorf("unknown command %q (use %s | %s)", cfg.Command, CommandCommit, CommandTag)
	}

	if cfg.DumpPrompt {
		return a.emit(text, cfg.OutputPath)
	}

	// 2. Provider and model.
	sel, err := a.resolve(ctx, cfg)
	if err != nil {
		return err
	}

	// 3. Generate.
	artifact, err := a.generate(ctx, sel, cfg.Agent, text)
	if err != nil {
		return err
	}

	switch {
	case cfg.Command == CommandCommit && cfg.Apply:
		return a.applyCommit(ctx, repoRoot, sel, cfg, text, artifact)
	case cfg.Command == CommandTag:
		if a.UI && (cfg.OutputPath != "" || cfg.CreateTag != "") {
			a.preview(artifact)
		}
		if cfg.CreateTag != "" {
			if err := gitx.CreateTag(ctx, repoRoot, cfg.CreateTag, artifact); err != nil {
				return err
			}
			fmt.Fprintf(a.Stderr, "Created tag %s\n", cfg.CreateTag)
		}
	}
	return a.emit(artifact, cfg.OutputPath)
}

func (a *App) resolve(ctx context.Context, cfg Config) (Selection, error) {
	name, err := selection.SelectProvider(ctx, a.Registry, a.Chooser, selection.Options{
		Explicit:       cfg.Provider,
		Default:        cfg.DefaultProvider,
		NonInteractive: cfg.NonInteractive,
	})
	if err != nil {
		return Selection{}, err
	}

	// Configured models are keyed by the canonical identifier.
	if p, err := a.Registry.Lookup(name); err == nil {
		name = p.Name()
	}

	model, err := selection.ResolveModel(ctx, a.Registry, name, a.Chooser, selection.Options{
		Explicit:       cfg.Model,
		Default:        cfg.DefaultModels[name],
		NonInteractive: cfg.NonInteractive,
	})
	if err != nil {
		return Selection{}, err
	}

	clog.FromContext(ctx).Debugf("selected provider=%s model=%q", name, model)
	return Selection{Provider: name, Model: model}, nil
}

// generate runs the selected provider once and sanitizes its output.
func (a *App) generate(ctx context.Context, sel Selection, agent, text string) (string, error) {
	p, err := a.Registry.Lookup(sel.Provider)
	if err != nil {
		return "", err
	}

	if a.UI {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.Stderr))
		s.Suffix = fmt.Sprintf(" Generating with %s...", p.Name())
		s.Start()
		defer s.Stop()
	}

	res, err := invoke.Execute(ctx, p, ai.Request{Prompt: text, Model: sel.Model, Agent: agent})
	if err != nil {
		return "", err
	}

	artifact := prompt.Sanitize(res.Stdout)
	if artifact == "" {
		return "", &invoke.EmptyOutputError{Provider: p.Name(), ExitCode: res.ExitCode, Diagnostics: res.Stderr}
	}
	return artifact, nil
}

// emit writes the artifact to path, or to stdout when path is empty, with
// exactly one trailing newline.
func (a *App) emit(artifact, path string) error {
	out := strings.TrimRight(artifact, "\n") + "\n"
	if strings.TrimSpace(path) == "" {
		_, err := io.WriteString(a.Stdout, out)
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

func buildCommitData(ctx context.Context, repoRoot string, cfg Config) (string, error) {
	files, err := gitx.StagedFiles(ctx, repoRoot)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", ErrNoStagedChanges
	}

	allIgnores := append(append([]string{}, DefaultIgnores...), cfg.IgnoredFiles...)
	kept := make([]string, 0, len(files))
	for _, f := range files {
		if shouldIgnore(f, allIgnores) {
			clog.FromContext(ctx).Debugf("skipping ignored file %s", f)
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return "", fmt.Errorf("%w: all %d staged files are ignored", ErrNoStagedChanges, len(files))
	}

	diff, err := gitx.StagedDiff(ctx, repoRoot, kept)
	if err != nil {
		return "", err
	}

	listing := listChanges(gitx.ParseChanges(ctx, diff), kept)
	return prompt.CommitData(listing, prompt.Truncate(diff, cfg.MaxDiffChars)), nil
}

// listChanges orders parsed changes like kept, reporting files the diff
// parser could not classify (binary files, mode changes) as modified.
func listChanges(parsed []gitx.StagedChange, kept []string) []prompt.FileChange {
	status := make(map[string]string, len(parsed))
	for _, ch := range parsed {
		status[ch.Path] = ch.Status
	}
	out := make([]prompt.FileChange, 0, len(kept))
	for _, path := range kept {
		s, ok := status[path]
		if !ok {
			s = "M"
		}
		out = append(out, prompt.FileChange{Status: s, Path: path})
	}
	return out
}

func shouldIgnore(pattern string, ignores []string) bool {
	base := filepath.Base(pattern)
	for _, ign := range ignores {
		if ign == base || ign == pattern {
			return true
		}
		if matched, _ := filepath.Match(ign, base); matched {
			return true
		}
		if matched, _ := filepath.Match(ign, pattern); matched {
			return true
		}
	}
	return false
}
