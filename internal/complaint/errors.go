package complaint

import "fmt"

// ErrorKind classifies a failed operation. The HTTP layer maps kinds to
// status codes; this package stays transport-agnostic.
type ErrorKind int

const (
	// KindValidation — missing required field or file; no side effects.
	KindValidation ErrorKind = iota
	// KindNotOwner — requester is not the assigned worker.
	KindNotOwner
	// KindNotFound — complaint or profile absent.
	KindNotFound
	// KindConflict — duplicate unique value (username, phone number).
	KindConflict
	// KindUpload — image store failure; complaint untouched.
	KindUpload
	// KindAnalysis — scorer exited non-zero or its output was unparsable.
	KindAnalysis
	// KindScorerUnavailable — scorer cannot start (missing interpreter or
	// script); a configuration error, not a transient fault.
	KindScorerUnavailable
	// KindPersistence — store write failed.
	KindPersistence
)

// Error is the single error shape crossing the service boundary. Message is
// safe to show to the caller; Detail carries diagnostics (e.g. raw scorer
// output) that go into the error response body for manual reconciliation.
type Error struct {
	Kind    ErrorKind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func validationErr(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func notOwnerErr(message string) *Error {
	return &Error{Kind: KindNotOwner, Message: message}
}

func notFoundErr(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func conflictErr(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func uploadErr(err error) *Error {
	return &Error{Kind: KindUpload, Message: "Image upload failed.", Err: err}
}

func analysisErr(message, detail string) *Error {
	return &Error{Kind: KindAnalysis, Message: message, Detail: detail}
}

func unavailableErr(err error) *Error {
	return &Error{Kind: KindScorerUnavailable, Message: "Image analysis is currently unavailable.", Err: err}
}

func persistenceErr(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "Internal storage error.", Err: err}
}
