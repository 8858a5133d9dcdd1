package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chainguard-dev/clog"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hoanghonghuy/gitscribe/internal/app"
	"github.com/hoanghonghuy/gitscribe/internal/config"
	"github.com/hoanghonghuy/gitscribe/internal/prompt"
)

var (
	cfgPath        string
	verbose        bool
	providerName   string
	modelName      string
	nonInteractive bool
	outputPath     string
	terse          bool
	emoji          bool
	maxDiffChars   int
	dumpPrompt     bool
	repoArg        string
)

var rootCmd = &cobra.Command{
	Use:   "gitscribe",
	Short: "Write commit messages and release notes with local AI command-line tools",
	Long: "gitscribe turns staged changes into commit messages and commit history into release notes " +
		"by delegating to an installed provider: opencode, ollama, claude or copilot.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmd.SetContext(withLogger(cmd.Context(), cmd.ErrOrStderr(), verbose))
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", "config file path (default ~/.config/gitscribe/config.toml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&providerName, "provider", "p", "", "provider to use (opencode, ollama, claude, copilot)")
	pf.StringVarP(&modelName, "model", "m", "", "model for providers with a catalog")
	pf.BoolVarP(&nonInteractive, "non-interactive", "n", false, "never prompt; fail when a choice is needed")
	pf.StringVarP(&outputPath, "output", "o", "", "write the result to this file instead of stdout")
	pf.BoolVar(&terse, "terse", false, "prefer a single-line summary")
	pf.BoolVar(&emoji, "emoji", false, "prefix the title with a gitmoji")
	pf.IntVar(&maxDiffChars, "max-diff-chars", config.DefaultMaxDiffChars, "truncate the diff after this many characters (0 = unlimited)")
	pf.BoolVar(&dumpPrompt, "dump-prompt", false, "print the prompt instead of calling a provider")
	pf.StringVar(&repoArg, "repo", "", "repository path (default current directory)")
}

// Execute runs the command tree. Errors are reported on stderr here.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		return err
	}
	return nil
}

func withLogger(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return clog.WithLogger(ctx, clog.New(handler))
}

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

func printError(w *os.File, err error) {
	prefix := "error:"
	if isatty.IsTerminal(w.Fd()) {
		prefix = errorStyle.Render(prefix)
	}
	fmt.Fprintf(w, "%s %v\n", prefix, err)
}

// loadConfig reads the environment and the config file named by --config,
// GITSCRIBE_CONFIG or the default path, in that order.
func loadConfig(ctx context.Context) (config.Env, config.FileConfig, string, error) {
	env, err := config.LoadEnv(ctx)
	if err != nil {
		return env, config.FileConfig{}, "", err
	}
	path := config.ResolveString(cfgPath, env.ConfigPath, "", "")
	if path == "" {
		// Load and Save fall back to the default path on their own.
		path, _ = config.DefaultPath()
	}
	fc, err := config.Load(path)
	if err != nil {
		return env, fc, path, err
	}
	clog.FromContext(ctx).Debugf("config loaded from %s", path)
	return env, fc, path, nil
}

// buildConfig resolves flags, environment, config file and defaults into the
// immutable run configuration for command.
func buildConfig(cmd *cobra.Command, command string) (app.Config, error) {
	env, fc, _, err := loadConfig(cmd.Context())
	if err != nil {
		return app.Config{}, err
	}
	flags := cmd.Flags()

	agent := fc.CommitAgent
	if command == app.CommandTag {
		agent = fc.TagAgent
	}

	limit := config.ResolveInt(maxDiffChars, flags.Changed("max-diff-chars"), fc.MaxDiffChars, config.DefaultMaxDiffChars)
	if limit < 0 {
		return app.Config{}, fmt.Errorf("max diff chars must not be negative, got %d", limit)
	}

	return app.Config{
		Command:         command,
		RepoArg:         repoArg,
		Provider:        config.ResolveString(providerName, env.Provider, "", ""),
		DefaultProvider: fc.Provider,
		Model:           config.ResolveString(modelName, env.Model, "", ""),
		DefaultModels:   fc.Models,
		Agent:           agent,
		NonInteractive:  nonInteractive || env.NonInteractive,
		Modes: prompt.Modes{
			Terse: config.ResolveBool(terse, flags.Changed("terse"), fc.Terse, false),
			Emoji: config.ResolveBool(emoji, flags.Changed("emoji"), fc.Emoji, false),
		},
		MaxDiffChars: limit,
		IgnoredFiles: fc.IgnoredFiles,
		OutputPath:   outputPath,
		DumpPrompt:   dumpPrompt,
	}, nil
}

func newApp(cfg app.Config) *app.App {
	a := app.New(cfg.NonInteractive)
	a.Stdout = rootCmd.OutOrStdout()
	a.Stderr = rootCmd.ErrOrStderr()
	return a
}
