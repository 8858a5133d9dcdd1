package gitx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/go-git/go-git/v5"
)

var ErrNotRepository = errors.New("not inside a git repository")

// ResolveRepoRoot finds the working tree containing repoArg, or the current
// directory when repoArg is empty.
func ResolveRepoRoot(ctx context.Context, repoArg string) (string, error) {
	start := strings.TrimSpace(repoArg)
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = cwd
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(start); err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true, EnableDotGitCommonDir: true})
	if err == nil {
		wt, err := repo.Worktree()
		if errors.Is(err, git.ErrIsBareRepository) {
			return "", ErrNotRepository
		}
		if err == nil {
			return wt.Filesystem.Root(), nil
		}
	}
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", ErrNotRepository
	}

	// go-git rejects some layouts (newer extensions); ask git itself.
	clog.FromContext(ctx).Debugf("go-git could not open %s: %v", start, err)
	root, gitErr := Git(ctx, start, "rev-parse", "--show-toplevel")
	if gitErr != nil {
		return "", ErrNotRepository
	}
	return strings.TrimSpace(root), nil
}

func RepoNameFromRoot(repoRoot string) string {
	return filepath.Base(repoRoot)
}
