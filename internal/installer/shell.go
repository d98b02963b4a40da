package installer

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"strings"

	"github.com/guangzhiyao/myzsh/internal/logger"
	"github.com/guangzhiyao/myzsh/internal/system"
)

// EnsureDefaultShell makes zsh the login shell unless it already is.
// The returned bool is false when nothing had to change.
func EnsureDefaultShell(x system.Executor) (bool, error) {
	shell := currentShell(x)
	logger.Debug("[DEBUG] Detected login shell: %s\n", shell)
	if strings.Contains(shell, "zsh") {
		return false, nil
	}

	zshPath, err := x.LookPath("zsh")
	if err != nil {
		return false, fmt.Errorf("%w: zsh not on PATH", ErrDependencyMissing)
	}

	logger.Info("[INFO] Changing login shell to %s...\n", zshPath)
	out, err := x.CombinedOutput(exec.Command("chsh", "-s", zshPath))
	if err != nil {
		return false, fmt.Errorf("chsh failed: %v\nOutput: %s", err, out)
	}
	return true, nil
}

// currentShell reads $SHELL, falling back to the passwd entry when the
// variable is empty.
func currentShell(x system.Executor) string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}

	u, err := user.Current()
	if err != nil {
		return ""
	}
	out, err := x.Output(exec.Command("getent", "passwd", u.Username))
	if err != nil {
		return ""
	}
	fields := strings.Split(strings.TrimSpace(string(out)), ":")
	if len(fields) >= 7 {
		return fields[6]
	}
	return ""
}
