package ai

import (
	"bufio"
	"bytes"
	"context"
	"iter"
	"os/exec"
	"strings"

	"github.com/chainguard-dev/clog"
)

// catalog runs binary with args each time the sequence is ranged over.
func catalog(ctx context.Context, binary string, args []string, header bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		cmd := exec.CommandContext(ctx, binary, args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		if err != nil {
			clog.FromContext(ctx).Debugf("listing models with %s %v failed: %v: %s", binary, args, err, strings.TrimSpace(stderr.String()))
			return
		}
		for m := range ParseModels(out, header) {
			if !yield(m) {
				return
			}
		}
	}
}

// ParseModels yields the first field of every non-blank line of out,
// skipping the first line when header is set.
func ParseModels(out []byte, header bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		sc := bufio.NewScanner(bytes.NewReader(out))
		first := true
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if first {
				first = false
				if header {
					continue
				}
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if !yield(fields[0]) {
				return
			}
		}
	}
}
