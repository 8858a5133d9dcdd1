package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/waigani/diffparser"
)

// StagedChange is one file in the staged diff.
type StagedChange struct {
	Status string // A, M or D
	Path   string
}

func Git(ctx context.Context, repoRoot string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoRoot}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %v failed: %w\n%s", args, err, stderr.String())
	}
	return stdout.String(), nil
}

// StagedFiles lists the paths in the index that differ from HEAD.
func StagedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	out, err := Git(ctx, repoRoot, "diff", "--staged", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitNonEmptyLines(out), nil
}

// StagedDiff returns the staged diff restricted to paths.
func StagedDiff(ctx context.Context, repoRoot string, paths []string) (string, error) {
	return Git(ctx, repoRoot, append([]string{"diff", "--staged", "--"}, paths...)...)
}

// ParseChanges extracts the changed-file listing from a unified diff.
func ParseChanges(ctx context.Context, diff string) []StagedChange {
	parsed, err := diffparser.Parse(diff)
	if err != nil {
		clog.FromContext(ctx).Debugf("parse staged diff: %v", err)
		return nil
	}

	out := make([]StagedChange, 0, len(parsed.Files))
	for _, f := range parsed.Files {
		ch := StagedChange{Status: "M", Path: f.NewName}
		switch f.Mode {
		case diffparser.NEW:
			ch.Status = "A"
		case diffparser.DELETED:
			ch.Status = "D"
			ch.Path = f.OrigName
		}
		if ch.Path == "" {
			ch.Path = pathFromHeader(f.DiffHeader)
		}
		if ch.Path != "" {
			out = append(out, ch)
		}
	}
	return out
}

// pathFromHeader reads b/<path> from a "diff --git a/<path> b/<path>" line.
func pathFromHeader(header string) string {
	first, _, _ := strings.Cut(header, "\n")
	if _, b, ok := strings.Cut(first, " b/"); ok {
		return strings.TrimSpace(b)
	}
	return ""
}

func Commit(ctx context.Context, repoRoot, message string) error {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return fmt.Errorf("commit message cannot be empty")
	}
	_, err := Git(ctx, repoRoot, "commit", "-m", msg)
	return err
}

// CreateTag creates an annotated tag at HEAD with message as its body.
func CreateTag(ctx context.Context, repoRoot, name, message string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	_, err := Git(ctx, repoRoot, "tag", "-a", name, "-m", message)
	return err
}

// HooksDir returns the absolute hooks directory of the repository.
func HooksDir(ctx context.Context, repoRoot string) (string, error) {
	out, err := Git(ctx, repoRoot, "rev-parse", "--path-format=absolute", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func splitNonEmptyLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
