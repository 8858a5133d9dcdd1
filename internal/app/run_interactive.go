package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chainguard-dev/clog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hoanghonghuy/gitscribe/internal/config"
	"github.com/hoanghonghuy/gitscribe/internal/gitx"
	"github.com/hoanghonghuy/gitscribe/internal/prompt"
)

// Action enum for confirmation
type Action int

const (
	ActionCommit Action = iota
	ActionRegenerate
	ActionEdit
	ActionCancel
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("212")) // Pinkish

var boxStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")). // Purplish
	Padding(1, 2).
	MarginBottom(1)

// runForm draws f on stderr so stdout stays reserved for artifacts.
func runForm(ctx context.Context, f *huh.Form) error {
	return f.WithProgramOptions(tea.WithOutput(os.Stderr)).RunWithContext(ctx)
}

// applyCommit loops over confirm, edit and regenerate until the user commits
// or cancels. Without a terminal the message is committed as generated.
func (a *App) applyCommit(ctx context.Context, repoRoot string, sel Selection, cfg Config, text, msg string) error {
	if !a.UI {
		return a.commit(ctx, repoRoot, msg)
	}

	for {
		action, err := a.confirmCommit(ctx, msg)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				action = ActionCancel
			} else {
				return err
			}
		}

		switch action {
		case ActionCommit:
			return a.commit(ctx, repoRoot, msg)
		case ActionEdit:
			edited, err := editCommitMessage(ctx, msg)
			if err != nil && !errors.Is(err, huh.ErrUserAborted) {
				return err
			}
			if s := prompt.Sanitize(edited); s != "" {
				msg = s
			}
		case ActionRegenerate:
			regenerated, err := a.generate(ctx, sel, cfg.Agent, text)
			if err != nil {
				return err
			}
			msg = regenerated
		default:
			fmt.Fprintln(a.Stderr, "Cancelled.")
			return nil
		}
	}
}

func (a *App) commit(ctx context.Context, repoRoot, msg string) error {
	if err := gitx.Commit(ctx, repoRoot, msg); err != nil {
		return err
	}
	clog.FromContext(ctx).Debugf("committed %d bytes of message", len(msg))
	fmt.Fprintln(a.Stderr, "Commit successful!")
	return nil
}

func (a *App) confirmCommit(ctx context.Context, msg string) (Action, error) {
	fmt.Fprintln(a.Stderr)
	fmt.Fprintln(a.Stderr, titleStyle.Render("Generated Commit Message:"))
	fmt.Fprintln(a.Stderr, boxStyle.Render(strings.TrimSpace(msg)))

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("Commit (Apply)", "commit"),
					huh.NewOption("Regenerate", "regenerate"),
					huh.NewOption("Edit", "edit"),
					huh.NewOption("Cancel", "cancel"),
				).
				Value(&selected),
		),
	)
	if err := runForm(ctx, form); err != nil {
		return ActionCancel, err
	}

	switch selected {
	case "commit":
		return ActionCommit, nil
	case "edit":
		return ActionEdit, nil
	case "regenerate":
		return ActionRegenerate, nil
	default:
		return ActionCancel, nil
	}
}

func editCommitMessage(ctx context.Context, initial string) (string, error) {
	content := initial
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Edit Commit Message").
				Description("Modify the message below (Press Esc+Enter or standard submit key to finish)").
				Value(&content),
		),
	)
	if err := runForm(ctx, form); err != nil {
		return "", err
	}
	return content, nil
}

// preview renders release notes as markdown on stderr. Rendering problems
// fall back to the plain text.
func (a *App) preview(notes string) {
	fmt.Fprintln(a.Stderr, titleStyle.Render("Release Notes:"))
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		if out, err := r.Render(notes); err == nil {
			fmt.Fprint(a.Stderr, out)
			return
		}
	}
	fmt.Fprintln(a.Stderr, boxStyle.Render(notes))
}

// EditConfig launches a form over the persisted settings. providers are the
// identifiers offered for the default provider.
func EditConfig(ctx context.Context, cfg config.FileConfig, providers []string) (config.FileConfig, bool, error) {
	provider := cfg.Provider
	commitAgent := cfg.CommitAgent
	tagAgent := cfg.TagAgent
	terse := cfg.Terse != nil && *cfg.Terse
	emoji := cfg.Emoji != nil && *cfg.Emoji
	maxDiffStr := ""
	if cfg.MaxDiffChars != nil {
		maxDiffStr = strconv.Itoa(*cfg.MaxDiffChars)
	}
	ignoredFilesStr := strings.Join(cfg.IgnoredFiles, ", ")
	ollamaModel := cfg.Models["ollama"]
	opencodeModel := cfg.Models["opencode"]

	providerOpts := []huh.Option[string]{huh.NewOption("Auto (ask or detect)", "")}
	for _, p := range providers {
		providerOpts = append(providerOpts, huh.NewOption(p, p))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("gitscribe Configuration").
				Description("Update your global settings"),

			huh.NewSelect[string]().
				Title("Default Provider").
				Options(providerOpts...).
				Value(&provider),

			huh.NewInput().
				Title("opencode Model").
				Description("Default model for opencode (provider/model)").
				Value(&opencodeModel),

			huh.NewInput().
				Title("ollama Model").
				Description("Default model for ollama").
				Suggestions([]string{"llama3", "qwen2.5-coder:7b", "mistral"}).
				Value(&ollamaModel),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Commit Agent").
				Description("opencode agent used for commit messages").
				Value(&commitAgent),

			huh.NewInput().
				Title("Tag Agent").
				Description("opencode agent used for release notes").
				Value(&tagAgent),

			huh.NewInput().
				Title("Max Diff Characters").
				Description("Truncate the diff after this many characters (0 = unlimited)").
				Value(&maxDiffStr).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					v, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if v < 0 {
						return fmt.Errorf("must not be negative")
					}
					return nil
				}),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Terse").
				Description("Ask for a single-line message?").
				Value(&terse),

			huh.NewConfirm().
				Title("Emoji").
				Description("Prefix the title with a gitmoji?").
				Value(&emoji),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Ignored Files").
				Description("Glob patterns (comma separated)").
				Value(&ignoredFilesStr),
		),
	)

	if err := runForm(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cfg, false, nil
		}
		return cfg, false, err
	}

	cfg.Provider = provider
	cfg.CommitAgent = strings.TrimSpace(commitAgent)
	cfg.TagAgent = strings.TrimSpace(tagAgent)
	cfg.Terse = &terse
	cfg.Emoji = &emoji
	cfg.MaxDiffChars = nil
	if v, err := strconv.Atoi(strings.TrimSpace(maxDiffStr)); err == nil {
		cfg.MaxDiffChars = &v
	}
	cfg.Models = setModel(setModel(cfg.Models, "ollama", ollamaModel), "opencode", opencodeModel)
	cfg.IgnoredFiles = splitList(ignoredFilesStr)

	return cfg, true, nil
}

func setModel(models map[string]string, provider, model string) map[string]string {
	model = strings.TrimSpace(model)
	if model == "" {
		delete(models, provider)
		return models
	}
	if models == nil {
		models = map[string]string{}
	}
	models[provider] = model
	return models
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
