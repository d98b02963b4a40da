package installer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/guangzhiyao/myzsh/internal/config"
	"github.com/guangzhiyao/myzsh/internal/logger"
	"github.com/guangzhiyao/myzsh/internal/paths"
	"github.com/guangzhiyao/myzsh/internal/system"
)

// initCommands maps init-capable tools to the command that prints their
// zsh init script.
var initCommands = map[string][]string{
	"starship": {"starship", "init", "zsh", "--print-full-init"},
	"atuin":    {"atuin", "init", "zsh"},
}

// InitSnapshots captures tool init scripts into the cache dir once at
// provision time, so the generated zshrc sources static files instead of
// eval'ing tool output on every shell startup.
type InitSnapshots struct {
	exec system.Executor
	opts config.Options
	dir  string
}

func NewInitSnapshots(x system.Executor, opts config.Options) *InitSnapshots {
	return &InitSnapshots{exec: x, opts: opts, dir: paths.CacheDir()}
}

// Capture snapshots the init script of every init-capable manifest tool
// present on PATH. It returns the snapshot paths in manifest order for
// the zshrc generator; tools that are missing or unknown are skipped.
func (c *InitSnapshots) Capture(m *config.Manifest) []string {
	var files []string
	for _, tool := range []string{m.Prompt.Command, m.History.Command} {
		argv, ok := initCommands[tool]
		if !ok {
			if tool != "" {
				logger.Debug("[DEBUG] No init command known for %s\n", tool)
			}
			continue
		}
		path, err := c.capture(tool, argv)
		if err != nil {
			logger.Warn("[WARN] Could not capture %s init script: %v\n", tool, err)
			continue
		}
		if path != "" {
			files = append(files, path)
		}
	}
	return files
}

func (c *InitSnapshots) capture(tool string, argv []string) (string, error) {
	if _, err := c.exec.LookPath(tool); err != nil {
		logger.Debug("[DEBUG] %s not on PATH, no init snapshot\n", tool)
		return "", nil
	}

	dest := filepath.Join(c.dir, tool+"-init.zsh")
	if c.opts.DryRun {
		logger.Info("[DRY-RUN] would capture output of %s into %s\n", system.QuoteArgs(argv), dest)
		return dest, nil
	}

	out, err := c.exec.Output(exec.Command(argv[0], argv[1:]...))
	if err != nil {
		return "", fmt.Errorf("%s: %w", system.QuoteArgs(argv), err)
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dest, out, 0644); err != nil {
		return "", err
	}
	logger.Debug("[DEBUG] Captured %s init script to %s\n", tool, dest)
	return dest, nil
}
