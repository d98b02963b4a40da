// Package system wraps external command execution behind an interface so
// provisioning steps can be exercised in tests and driven in dry-run mode.
package system

import (
	"os/exec"
)

// Executor runs external commands. LookPath, IsRoot and CanSudo are read-only
// probes and behave identically in every implementation; the execution
// methods differ between live and dry-run.
type Executor interface {
	Run(cmd *exec.Cmd) error
	Output(cmd *exec.Cmd) ([]byte, error)
	CombinedOutput(cmd *exec.Cmd) ([]byte, error)
	LookPath(name string) (string, error)
	IsRoot() bool
	CanSudo() bool
}

// NewExecutor returns the live executor, or the dry-run wrapper when dryRun
// is set.
func NewExecutor(dryRun bool) Executor {
	if dryRun {
		return &DryRunExecutor{}
	}
	return &LiveExecutor{}
}
