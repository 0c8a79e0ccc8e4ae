package scorer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Wait keeps draining pipes after the process is
// gone, so an orphaned grandchild holding stdout cannot hang the handler.
const waitDelay = 3 * time.Second

// Gateway launches the external scorer process. Construct it once at startup
// with the resolved interpreter and script paths; both are checked again on
// every Analyze call so a broken deployment surfaces as a launch failure
// rather than a failed spawn.
type Gateway struct {
	interpreter string
	script      string
	timeout     time.Duration
}

// NewGateway returns a Gateway that runs `interpreter script <imageURL>` with
// a wall-clock budget of timeout per invocation.
func NewGateway(interpreter, script string, timeout time.Duration) *Gateway {
	return &Gateway{interpreter: interpreter, script: script, timeout: timeout}
}

// Analyze runs the scorer against imageURL and blocks until the process
// exits. Stdout is accumulated into a private buffer for the lifetime of the
// process; stderr is logged and never parsed for the result. Output draining
// completes before the exit status is interpreted, so the exit event is
// ordered after all output events.
func (g *Gateway) Analyze(ctx context.Context, imageURL string) Outcome {
	interp, err := exec.LookPath(g.interpreter)
	if err != nil {
		return Outcome{Kind: LaunchFailure, Err: fmt.Errorf("interpreter missing: %w", err)}
	}
	if _, err := os.Stat(g.script); err != nil {
		return Outcome{Kind: LaunchFailure, Err: fmt.Errorf("script missing: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, interp, g.script, imageURL)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		return Outcome{Kind: LaunchFailure, Err: err}
	}
	waitErr := cmd.Wait()

	if stderr.Len() > 0 {
		log.Printf("WARNING: scorer stderr for %s: %s", imageURL, strings.TrimSpace(stderr.String()))
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(waitErr, &exitErr):
			// A kill by the deadline also lands here; the accumulated
			// output is discarded either way.
			return Outcome{Kind: ProcessFailure, ExitCode: exitErr.ExitCode()}
		case errors.Is(waitErr, exec.ErrWaitDelay):
			return Outcome{Kind: ProcessFailure, ExitCode: -1}
		default:
			return Outcome{Kind: LaunchFailure, Err: waitErr}
		}
	}

	raw := stdout.String()
	score, err := ExtractScore(raw)
	if err != nil {
		return Outcome{Kind: ParseFailure, RawOutput: raw, Err: err}
	}
	return Outcome{Kind: Scored, Score: score, RawOutput: raw}
}
