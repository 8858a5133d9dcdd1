package prompt

import (
	"regexp"
	"strings"
)

var reFence = regexp.MustCompile("^```[\\w+.-]*[ \\t]*$")

// Sanitize removes code fence lines and surrounding blank lines from raw
// provider output. Interior blank lines are kept. Indented fences are
// content, not delimiters.
func Sanitize(s string) string {
	var kept []string
	for _, ln := range strings.Split(s, "\n") {
		// Strip every trailing CR so a second pass finds none.
		ln = strings.TrimRight(ln, "\r")
		if reFence.MatchString(ln) {
			continue
		}
		if len(kept) == 0 && strings.TrimSpace(ln) == "" {
			continue
		}
		kept = append(kept, ln)
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	return strings.Join(kept, "\n")
}
