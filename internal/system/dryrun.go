package system

import (
	"os/exec"

	"github.com/guangzhiyao/myzsh/internal/audit"
	"github.com/guangzhiyao/myzsh/internal/logger"
)

// DryRunExecutor prints the command that would run instead of executing it.
// Probes (LookPath, IsRoot, CanSudo) pass through to the live executor since
// they do not change system state.
type DryRunExecutor struct {
	live LiveExecutor
}

func (e *DryRunExecutor) announce(cmd *exec.Cmd) {
	logger.Info("[DRY-RUN] would run: %s\n", QuoteArgs(cmd.Args))
	audit.DryRun(cmd.Args)
}

func (e *DryRunExecutor) Run(cmd *exec.Cmd) error {
	e.announce(cmd)
	return nil
}

func (e *DryRunExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	e.announce(cmd)
	return nil, nil
}

func (e *DryRunExecutor) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	e.announce(cmd)
	return nil, nil
}

func (e *DryRunExecutor) LookPath(name string) (string, error) {
	return e.live.LookPath(name)
}

func (e *DryRunExecutor) IsRoot() bool {
	return e.live.IsRoot()
}

func (e *DryRunExecutor) CanSudo() bool {
	return e.live.CanSudo()
}
