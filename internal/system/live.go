package system

import (
	"os"
	"os/exec"
	"time"

	"github.com/guangzhiyao/myzsh/internal/audit"
)

// LiveExecutor executes commands for real and records each invocation in the
// audit log.
type LiveExecutor struct{}

func (e *LiveExecutor) Run(cmd *exec.Cmd) error {
	start := time.Now()
	err := cmd.Run()
	audit.Command(cmd.Args, time.Since(start), err)
	return err
}

func (e *LiveExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	start := time.Now()
	out, err := cmd.Output()
	audit.Command(cmd.Args, time.Since(start), err)
	return out, err
}

func (e *LiveExecutor) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	start := time.Now()
	out, err := cmd.CombinedOutput()
	audit.Command(cmd.Args, time.Since(start), err)
	return out, err
}

func (e *LiveExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (e *LiveExecutor) IsRoot() bool {
	return os.Geteuid() == 0
}

// CanSudo reports whether sudo is usable without prompting for a password.
func (e *LiveExecutor) CanSudo() bool {
	return exec.Command("sudo", "-n", "true").Run() == nil
}
