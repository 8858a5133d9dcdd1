package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"

	"github.com/hoanghonghuy/gitscribe/internal/gitx"
)

// hookScript is the prepare-commit-msg hook. It is skipped for -m, merges and
// amends, and falls back to the non-interactive mode when there is no tty.
const hookScript = `#!/bin/sh
# gitscribe hook
# Generates a commit message for an empty "git commit".
# $1 is the message file, $2 the message source, $3 the SHA.

COMMIT_MSG_FILE=$1
COMMIT_SOURCE=$2

case "$COMMIT_SOURCE" in
  message|merge|squash|commit) exit 0 ;;
esac

if [ -e /dev/tty ] && (exec < /dev/tty) 2>/dev/null; then
  "%[1]s" commit --output "$COMMIT_MSG_FILE" < /dev/tty 2> /dev/tty || exit 0
else
  "%[1]s" commit --non-interactive --output "$COMMIT_MSG_FILE" || exit 0
fi
`

// InstallHook installs the prepare-commit-msg hook into the repository at
// repoArg. An existing hook is never overwritten.
func InstallHook(ctx context.Context, repoArg string, out io.Writer) error {
	repoRoot, err := gitx.ResolveRepoRoot(ctx, repoArg)
	if err != nil {
		return err
	}
	hooksDir, err := gitx.HooksDir(ctx, repoRoot)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("create hooks dir: %w", err)
	}

	hookPath := filepath.Join(hooksDir, "prepare-commit-msg")
	if _, err := os.Stat(hookPath); err == nil {
		return fmt.Errorf("hook %s already exists. Please remove it first", hookPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat hook: %w", err)
	}

	exe, err := os.Executable()
	if err != nil {
		exe = "gitscribe"
	} else {
		exe, _ = filepath.Abs(exe)
	}

	if err := os.WriteFile(hookPath, []byte(fmt.Sprintf(hookScript, exe)), 0o755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}

	clog.FromContext(ctx).Debugf("hook points at %s", exe)
	fmt.Fprintf(out, "Hook installed to %s\n", hookPath)
	return nil
}
