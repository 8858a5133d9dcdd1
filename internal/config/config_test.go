package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(FileConfig{}, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `provider = "ollama"
commit_agent = "commit"
ignored_files = ["*.pb.go", "vendor/*"]
terse = true
max_diff_chars = 2000

[models]
ollama = "qwen2.5-coder:7b"
opencode = "anthropic/claude-sonnet-4"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	terse := true
	maxDiff := 2000
	want := FileConfig{
		Provider:     "ollama",
		CommitAgent:  "commit",
		IgnoredFiles: []string{"*.pb.go", "vendor/*"},
		Terse:        &terse,
		MaxDiffChars: &maxDiff,
		Models: map[string]string{
			"ollama":   "qwen2.5-coder:7b",
			"opencode": "anthropic/claude-sonnet-4",
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("provider = [unterminated"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want decode error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	emoji := true
	in := FileConfig{Provider: "claude", Emoji: &emoji, Models: map[string]string{"ollama": "llama3"}}

	if err := Save(in, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("GITSCRIBE_PROVIDER", "opencode")
	t.Setenv("GITSCRIBE_MODEL", "openai/gpt-4.1")
	t.Setenv("GITSCRIBE_NON_INTERACTIVE", "true")

	env, err := LoadEnv(context.Background())
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	want := Env{Provider: "opencode", Model: "openai/gpt-4.1", NonInteractive: true}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("LoadEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveString(t *testing.T) {
	tests := []struct {
		flag, env, file, def, want string
	}{
		{"f", "e", "c", "d", "f"},
		{"", "e", "c", "d", "e"},
		{"", "", "c", "d", "c"},
		{"", "", "", "d", "d"},
	}
	for _, tt := range tests {
		if got := ResolveString(tt.flag, tt.env, tt.file, tt.def); got != tt.want {
			t.Errorf("ResolveString(%q, %q, %q, %q) = %q, want %q", tt.flag, tt.env, tt.file, tt.def, got, tt.want)
		}
	}
}

func TestResolveIntAndBool(t *testing.T) {
	five := 5
	if got := ResolveInt(9, true, &five, 1); got != 9 {
		t.Errorf("ResolveInt(flag set) = %d, want 9", got)
	}
	if got := ResolveInt(9, false, &five, 1); got != 5 {
		t.Errorf("ResolveInt(file) = %d, want 5", got)
	}
	if got := ResolveInt(9, false, nil, 1); got != 1 {
		t.Errorf("ResolveInt(default) = %d, want 1", got)
	}

	yes := true
	if got := ResolveBool(false, true, &yes, true); got {
		t.Errorf("ResolveBool(flag set false) = true, want false")
	}
	if got := ResolveBool(false, false, &yes, false); !got {
		t.Errorf("ResolveBool(file) = false, want true")
	}
}
