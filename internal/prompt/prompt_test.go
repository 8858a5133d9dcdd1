package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	diff := strings.Repeat("abcdefghij", 50)

	for _, limit := range []int{1, 7, 100, 499} {
		got := Truncate(diff, limit)
		if !strings.HasSuffix(got, TruncationMarker) {
			t.Fatalf("Truncate(%d) missing marker: %q", limit, got)
		}
		body := strings.TrimSuffix(got, TruncationMarker)
		if len(body) != limit {
			t.Errorf("Truncate(%d) kept %d chars, want %d", limit, len(body), limit)
		}
		if !strings.HasPrefix(diff, body) {
			t.Errorf("Truncate(%d) body is not a prefix of the diff", limit)
		}
	}
}

func TestTruncateUnlimitedOrShort(t *testing.T) {
	tests := []struct {
		diff  string
		limit int
	}{
		{"short", 0},
		{"short", 5},
		{"short", 100},
		{"", 3},
	}
	for _, tt := range tests {
		if got := Truncate(tt.diff, tt.limit); got != tt.diff {
			t.Errorf("Truncate(%q, %d) = %q, want unchanged", tt.diff, tt.limit, got)
		}
	}
}

func TestTruncateCountsCharacters(t *testing.T) {
	got := Truncate("héllo wörld", 4)
	body := strings.TrimSuffix(got, TruncationMarker)
	if body != "héll" {
		t.Errorf("Truncate() body = %q, want %q", body, "héll")
	}
	if !utf8.ValidString(got) {
		t.Errorf("Truncate() produced invalid UTF-8: %q", got)
	}
}

func TestComposeSegments(t *testing.T) {
	got := Compose("RULES\n", Modes{}, "\nDATA\n", "TRIGGER")
	want := "RULES\n\nDATA\n\nTRIGGER\n"
	if got != want {
		t.Errorf("Compose() = %q, want %q", got, want)
	}
}

func TestComposeModes(t *testing.T) {
	tests := []struct {
		name  string
		modes Modes
		want  []string
	}{
		{"none", Modes{}, nil},
		{"terse", Modes{Terse: true}, []string{terseRule}},
		{"emoji", Modes{Emoji: true}, []string{emojiRule}},
		{"both", Modes{Terse: true, Emoji: true}, []string{terseRule, emojiRule}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(CommitRules, tt.modes, "DATA", CommitTrigger)
			rules, _, ok := strings.Cut(got, "\n\n")
			if !ok {
				t.Fatalf("Compose() has no segment separator: %q", got)
			}
			if !strings.HasPrefix(rules, CommitRules) {
				t.Fatalf("rules block does not start with the base rules")
			}
			extra := strings.TrimPrefix(rules, CommitRules)
			var lines []string
			if extra != "" {
				lines = strings.Split(strings.TrimPrefix(extra, "\n"), "\n")
			}
			if strings.Join(lines, "|") != strings.Join(tt.want, "|") {
				t.Errorf("mode lines = %q, want %q", lines, tt.want)
			}
		})
	}
}

func TestCommitData(t *testing.T) {
	got := CommitData([]FileChange{{"M", "main.go"}, {"A", "docs/new.md"}}, "diff --git a/main.go b/main.go\n+x\n")
	want := "# CHANGED FILES:\nM\tmain.go\nA\tdocs/new.md\n\n# CODE CHANGES:\ndiff --git a/main.go b/main.go\n+x"
	if got != want {
		t.Errorf("CommitData() = %q, want %q", got, want)
	}
}

func TestReleaseData(t *testing.T) {
	commits := []string{"a1b2c3d feat: first", "e4f5a6b fix: second"}
	if got, want := ReleaseData("v1.0.0", commits), "# COMMITS SINCE v1.0.0:\na1b2c3d feat: first\ne4f5a6b fix: second"; got != want {
		t.Errorf("ReleaseData() = %q, want %q", got, want)
	}
	if got := ReleaseData("", commits); !strings.HasPrefix(got, "# COMMITS:\n") {
		t.Errorf("ReleaseData() without tag = %q", got)
	}
}
