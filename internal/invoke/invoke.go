// Package invoke runs a provider command and classifies its output.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"

	"github.com/hoanghonghuy/gitscribe/internal/ai"
)

// ErrUnavailable indicates the provider's command is not installed.
var ErrUnavailable = errors.New("provider unavailable")

// EmptyOutputError is returned when a provider writes nothing to stdout.
type EmptyOutputError struct {
	Provider    string
	ExitCode    int
	Diagnostics string // captured stderr, verbatim
}

func (e *EmptyOutputError) Error() string {
	msg := fmt.Sprintf("%s returned no output (exit code %d)", e.Provider, e.ExitCode)
	if strings.TrimSpace(e.Diagnostics) != "" {
		msg += ":\n" + e.Diagnostics
	}
	return msg
}

// Result is the captured output of one provider call.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Execute runs p with the given request. A non-zero exit status is not an
// error as long as the provider printed something on stdout.
func Execute(ctx context.Context, p ai.Provider, req ai.Request) (*Result, error) {
	log := clog.FromContext(ctx).With("provider", p.Name())

	if !p.Available() {
		return nil, fmt.Errorf("%w: %s (command %q not found in PATH)", ErrUnavailable, p.Name(), p.Binary())
	}

	stderrFile, err := os.CreateTemp("", "gitscribe-stderr-*")
	if err != nil {
		return nil, fmt.Errorf("create stderr capture: %w", err)
	}
	defer func() {
		stderrFile.Close()
		os.Remove(stderrFile.Name())
	}()

	inv := p.Invocation(req)
	cmd := exec.CommandContext(ctx, p.Binary(), inv.Args...)
	if inv.Piped {
		cmd.Stdin = strings.NewReader(inv.Stdin)
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = stderrFile

	log.Debugf("running %s with %d args, model=%q", p.Binary(), len(inv.Args), req.Model)
	started := time.Now()
	runErr := cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		ExitCode: exitCode(runErr),
		Duration: time.Since(started),
	}

	if _, err := stderrFile.Seek(0, io.SeekStart); err == nil {
		b, _ := io.ReadAll(stderrFile)
		res.Stderr = string(b)
	}
	if runErr != nil {
		log.Debugf("%s exited with %v after %s", p.Name(), runErr, res.Duration.Round(time.Millisecond))
		if res.Stderr == "" && res.ExitCode == -1 {
			res.Stderr = runErr.Error()
		}
	}

	if strings.TrimSpace(res.Stdout) == "" {
		return res, &EmptyOutputError{
			Provider:    p.Name(),
			ExitCode:    res.ExitCode,
			Diagnostics: res.Stderr,
		}
	}
	return res, nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
