package installer

import "errors"

// Failure classes for provisioning steps. Call sites wrap these with
// context via fmt.Errorf and %w; the orchestrator branches on errors.Is.
var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrDependencyMissing = errors.New("dependency missing")
	ErrNetworkFailure    = errors.New("network failure")
	ErrMergeConflict     = errors.New("merge conflict")
	ErrCopyFailure       = errors.New("copy failure")
)
