package prompt

import (
	"fmt"
	"strings"
)

// TruncationMarker is appended to diffs cut by Truncate.
const TruncationMarker = "\n...[diff truncated]..."

// Modes are optional rule lines appended after the base rules.
type Modes struct {
	Terse bool
	Emoji bool
}

const (
	terseRule = "- Prefer a single summary line. Add a body only when the change cannot be understood without one."
	emojiRule = "- Prefix the title with the gitmoji matching its type (e.g. ✨ feat, 🐛 fix, 📝 docs, ♻️ refactor)."
)

// CommitRules is the fixed instruction block for commit messages.
const CommitRules = "" +
	"You are an AI programming assistant writing a git commit message for the staged changes below.\n" +
	"Rules:\n" +
	"- Use the Conventional Commits format: <type>(<optional scope>): <title>\n" +
	"- Allowed types: feat, fix, docs, style, refactor, perf, test, build, ci, chore, revert\n" +
	"- Keep the title under 72 characters.\n" +
	"- Separate title and body with one blank line and wrap body lines at 72 characters.\n" +
	"- Use the imperative, present tense (\"add\", not \"added\" or \"adds\").\n" +
	"- Never start a line with '#'.\n" +
	"- Output only the commit message: no code fences, no explanations."

// ReleaseRules is the fixed instruction block for release notes.
const ReleaseRules = "" +
	"You are an AI programming assistant writing release notes from the commit log below.\n" +
	"Rules:\n" +
	"- Group entries under these markdown headings, omitting empty ones: Features, Fixes, Performance, Documentation, Other\n" +
	"- One bullet per user-visible change; merge commits that describe the same change.\n" +
	"- Keep each bullet under 100 characters.\n" +
	"- Use the imperative, present tense.\n" +
	"- Never start a line with '#' except for the group headings.\n" +
	"- Output only the release notes: no code fences, no explanations."

const (
	CommitTrigger  = "Now write the commit message for these changes."
	ReleaseTrigger = "Now write the release notes for these commits."
)

// Compose joins rules, data and trigger with one blank line between them.
// Mode lines are appended to rules in declaration order.
func Compose(rules string, modes Modes, data, trigger string) string {
	var r strings.Builder
	r.WriteString(strings.TrimRight(rules, "\n"))
	if modes.Terse {
		r.WriteString("\n" + terseRule)
	}
	if modes.Emoji {
		r.WriteString("\n" + emojiRule)
	}

	return strings.Join([]string{
		r.String(),
		strings.Trim(data, "\n"),
		strings.Trim(trigger, "\n"),
	}, "\n\n") + "\n"
}

// Truncate cuts diff to limit characters and appends TruncationMarker.
// A limit of 0 means unlimited.
func Truncate(diff string, limit int) string {
	if limit <= 0 {
		return diff
	}
	runes := []rune(diff)
	if len(runes) <= limit {
		return diff
	}
	return string(runes[:limit]) + TruncationMarker
}

// FileChange is one entry of the changed-file listing.
type FileChange struct {
	Status string // A, M, D
	Path   string
}

// CommitData builds the data block for commit message generation.
// diff must already be truncated.
func CommitData(files []FileChange, diff string) string {
	var b strings.Builder
	b.WriteString("# CHANGED FILES:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "%s\t%s\n", f.Status, f.Path)
	}
	b.WriteString("\n# CODE CHANGES:\n")
	b.WriteString(strings.TrimRight(diff, "\n"))
	return b.String()
}

// ReleaseData builds the data block for release notes from commits listed
// oldest first. since is the previous tag, or empty for the whole history.
func ReleaseData(since string, commits []string) string {
	var b strings.Builder
	if since != "" {
		fmt.Fprintf(&b, "# COMMITS SINCE %s:\n", since)
	} else {
		b.WriteString("# COMMITS:\n")
	}
	b.WriteString(strings.Join(commits, "\n"))
	return b.String()
}
