package gitx

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/go-cmp/cmp"
)

var testSig = &object.Signature{Name: "Test", Email: "test@example.com"}

// initRepo creates a repository with no commits.
func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	return dir, repo
}

// commitFile writes name and commits it; commits are spaced a second apart
// so committer-time ordering is stable.
func commitFile(t *testing.T, repo *git.Repository, dir, name, content, msg string, when time.Time) plumbing.Hash {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sig := *testSig
	sig.When = when
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: &sig, Committer: &sig})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestResolveRepoRoot(t *testing.T) {
	ctx := context.Background()
	dir, _ := initRepo(t)
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	root, err := ResolveRepoRoot(ctx, sub)
	if err != nil {
		t.Fatalf("ResolveRepoRoot() error = %v", err)
	}
	wantRoot, _ := filepath.EvalSymlinks(dir)
	gotRoot, _ := filepath.EvalSymlinks(root)
	if gotRoot != wantRoot {
		t.Errorf("ResolveRepoRoot() = %q, want %q", gotRoot, wantRoot)
	}
}

func TestResolveRepoRootOutsideRepository(t *testing.T) {
	requireGit(t)
	t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())
	_, err := ResolveRepoRoot(context.Background(), t.TempDir())
	if !errors.Is(err, ErrNotRepository) {
		t.Fatalf("ResolveRepoRoot() error = %v, want %v", err, ErrNotRepository)
	}
}

func TestCommitsSinceLatestTag(t *testing.T) {
	dir, repo := initRepo(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	commitFile(t, repo, dir, "a.txt", "a", "chore: initial", base)
	tagged := commitFile(t, repo, dir, "b.txt", "b", "feat: first release", base.Add(time.Minute))
	if _, err := repo.CreateTag("v1.0.0", tagged, &git.CreateTagOptions{Tagger: testSig, Message: "v1.0.0"}); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	first := commitFile(t, repo, dir, "c.txt", "c", "fix: handle empty input\n\nlonger body", base.Add(2*time.Minute))
	second := commitFile(t, repo, dir, "d.txt", "d", "feat: add release notes", base.Add(3*time.Minute))

	since, commits, err := CommitsSince(dir, "")
	if err != nil {
		t.Fatalf("CommitsSince() error = %v", err)
	}
	if since != "v1.0.0" {
		t.Errorf("since = %q, want v1.0.0", since)
	}
	want := []string{
		first.String()[:7] + " fix: handle empty input",
		second.String()[:7] + " feat: add release notes",
	}
	if diff := cmp.Diff(want, commits); diff != "" {
		t.Errorf("CommitsSince() mismatch (-want +got):\n%s", diff)
	}
}

func TestCommitsSinceWithoutTags(t *testing.T) {
	dir, repo := initRepo(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	commitFile(t, repo, dir, "a.txt", "a", "one", base)
	commitFile(t, repo, dir, "b.txt", "b", "two", base.Add(time.Minute))

	since, commits, err := CommitsSince(dir, "")
	if err != nil {
		t.Fatalf("CommitsSince() error = %v", err)
	}
	if since != "" || len(commits) != 2 {
		t.Fatalf("CommitsSince() = %q, %v; want whole history", since, commits)
	}
}

func TestCommitsSinceFrom(t *testing.T) {
	dir, repo := initRepo(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	start := commitFile(t, repo, dir, "a.txt", "a", "one", base)
	commitFile(t, repo, dir, "b.txt", "b", "two", base.Add(time.Minute))

	since, commits, err := CommitsSince(dir, start.String())
	if err != nil {
		t.Fatalf("CommitsSince() error = %v", err)
	}
	if since != start.String() || len(commits) != 1 {
		t.Fatalf("CommitsSince() = %q, %v; want one commit", since, commits)
	}
}

func TestCommitsSinceTagAtHead(t *testing.T) {
	dir, repo := initRepo(t)
	head := commitFile(t, repo, dir, "a.txt", "a", "one", time.Now())
	if _, err := repo.CreateTag("v0.1.0", head, nil); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	_, commits, err := CommitsSince(dir, "")
	if err != nil {
		t.Fatalf("CommitsSince() error = %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("CommitsSince() = %v, want none", commits)
	}
}

func TestCommitsSinceEmptyRepository(t *testing.T) {
	dir, _ := initRepo(t)
	_, commits, err := CommitsSince(dir, "")
	if err != nil {
		t.Fatalf("CommitsSince() error = %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("CommitsSince() = %v, want none", commits)
	}
}

func TestParseChanges(t *testing.T) {
	diff := `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@
 package main
-var x = 1
+var x = 2
diff --git a/docs/new.md b/docs/new.md
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/docs/new.md
@@ -0,0 +1 @@
+hello
diff --git a/old.txt b/old.txt
deleted file mode 100644
index 4444444..0000000
--- a/old.txt
+++ /dev/null
@@ -1 +0,0 @@
-bye
`
	got := ParseChanges(context.Background(), diff)
	want := []StagedChange{
		{Status: "M", Path: "main.go"},
		{Status: "A", Path: "docs/new.md"},
		{Status: "D", Path: "old.txt"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseChanges() mismatch (-want +got):\n%s", diff)
	}
}

func TestStagedFilesAndDiff(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "keep.go", "package keep\n", "init", time.Now())

	if err := os.WriteFile(filepath.Join(dir, "keep.go"), []byte("package keep\n\nvar X = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "go.sum"), []byte("sum\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	wt, _ := repo.Worktree()
	for _, f := range []string{"keep.go", "go.sum"} {
		if _, err := wt.Add(f); err != nil {
			t.Fatalf("Add %s: %v", f, err)
		}
	}

	files, err := StagedFiles(ctx, dir)
	if err != nil {
		t.Fatalf("StagedFiles() error = %v", err)
	}
	if diff := cmp.Diff([]string{"go.sum", "keep.go"}, files); diff != "" {
		t.Errorf("StagedFiles() mismatch (-want +got):\n%s", diff)
	}

	diff, err := StagedDiff(ctx, dir, []string{"keep.go"})
	if err != nil {
		t.Fatalf("StagedDiff() error = %v", err)
	}
	changes := ParseChanges(ctx, diff)
	if len(changes) != 1 || changes[0] != (StagedChange{Status: "M", Path: "keep.go"}) {
		t.Errorf("ParseChanges(StagedDiff) = %v, want only keep.go modified", changes)
	}
}
