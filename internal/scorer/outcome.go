// Package scorer runs the external cleanliness scorer against an image URL
// and maps its termination to a structured outcome. The scorer is a Python
// script that prints a short summary to stdout; the only structured data
// contracted between it and this package is the final score line.
package scorer

// OutcomeKind classifies how an analysis attempt ended.
type OutcomeKind int

const (
	// Scored means the process exited 0 and its output parsed to a score.
	Scored OutcomeKind = iota
	// ParseFailure means the process exited 0 but no score line was found.
	ParseFailure
	// ProcessFailure means the process exited non-zero (or was killed by
	// the deadline).
	ProcessFailure
	// LaunchFailure means the process never ran: missing interpreter or
	// script, or the spawn itself failed.
	LaunchFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case Scored:
		return "scored"
	case ParseFailure:
		return "parseFailure"
	case ProcessFailure:
		return "processFailure"
	case LaunchFailure:
		return "launchFailure"
	default:
		return "unknown"
	}
}

// Outcome is the result of exactly one analysis attempt. It is produced once
// per work submission, consumed immediately, and never retried automatically.
type Outcome struct {
	Kind OutcomeKind

	// Score holds the cleanliness percentage when Kind is Scored.
	Score float64

	// RawOutput is the full accumulated stdout, kept for diagnostics on
	// ParseFailure. It is discarded on ProcessFailure.
	RawOutput string

	// ExitCode is set when Kind is ProcessFailure.
	ExitCode int

	// Err is the launch failure reason when Kind is LaunchFailure, or the
	// parse error when Kind is ParseFailure.
	Err error
}
