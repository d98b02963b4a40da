package installer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/guangzhiyao/myzsh/internal/logger"
	"github.com/guangzhiyao/myzsh/internal/system"
)

// SyncState is the outcome of bringing one git checkout up to date.
type SyncState string

const (
	Absent         SyncState = "absent"
	ClonedFresh    SyncState = "cloned fresh"
	UpdatedCleanly SyncState = "updated cleanly"
	FetchFailed    SyncState = "fetch failed"
	UpdateConflict SyncState = "update conflict"
)

func (s SyncState) String() string { return string(s) }

// RepoSync keeps shallow git checkouts current without ever touching
// local edits: fast-forward only, no force, no reset.
type RepoSync struct {
	exec system.Executor
}

func NewRepoSync(x system.Executor) *RepoSync {
	return &RepoSync{exec: x}
}

// Sync clones remote into dir when no checkout is there yet, otherwise
// fetches and fast-forwards the existing one.
func (r *RepoSync) Sync(remote, dir string) (SyncState, error) {
	if !r.cloned(dir) {
		logger.Info("[INFO] Cloning %s...\n", remote)
		out, err := r.exec.CombinedOutput(exec.Command("git", "clone", "--depth", "1", remote, dir))
		if err != nil {
			return Absent, fmt.Errorf("%w: clone %s: %v\nOutput: %s", ErrNetworkFailure, remote, err, out)
		}
		return ClonedFresh, nil
	}

	logger.Debug("[DEBUG] %s already cloned, updating\n", dir)
	out, err := r.exec.CombinedOutput(exec.Command("git", "-C", dir, "fetch", "--depth", "1", "origin"))
	if err != nil {
		return FetchFailed, fmt.Errorf("%w: fetch in %s: %v\nOutput: %s", ErrNetworkFailure, dir, err, out)
	}

	out, err = r.exec.CombinedOutput(exec.Command("git", "-C", dir, "merge", "--ff-only", "--autostash", "FETCH_HEAD"))
	if err != nil {
		return UpdateConflict, fmt.Errorf("%w: %s cannot fast-forward over local changes: %v\nOutput: %s", ErrMergeConflict, dir, err, out)
	}
	return UpdatedCleanly, nil
}

// cloned reports whether dir already holds a git checkout.
func (r *RepoSync) cloned(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
