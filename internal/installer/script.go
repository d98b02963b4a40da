package installer

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/guangzhiyao/myzsh/internal/config"
	"github.com/guangzhiyao/myzsh/internal/logger"
	"github.com/guangzhiyao/myzsh/internal/system"
)

const previewLines = 10

// ScriptRunner downloads remote installer scripts and runs them through
// an interpreter, the way their upstream docs pipe them into sh.
// Downloading to a private temp file first allows a preview of what is
// about to run.
type ScriptRunner struct {
	exec system.Executor
	opts config.Options
}

func NewScriptRunner(x system.Executor, opts config.Options) *ScriptRunner {
	return &ScriptRunner{exec: x, opts: opts}
}

// Run fetches the script at url and executes `interpreter script args...`.
// env holds extra KEY=VALUE pairs appended to the process environment.
// Argument boundaries are passed to the interpreter verbatim, nothing is
// re-tokenized.
func (s *ScriptRunner) Run(url, interpreter string, args, env []string) error {
	client, err := s.downloader()
	if err != nil {
		return err
	}

	if s.opts.DryRun {
		argv := append([]string{interpreter, "<script from " + url + ">"}, args...)
		if len(env) > 0 {
			logger.Info("[DRY-RUN] with environment: %s\n", strings.Join(env, " "))
		}
		logger.Info("[DRY-RUN] would run: %s\n", system.QuoteArgs(argv))
		return nil
	}

	tmp, err := os.CreateTemp("", "myzsh-script-*.sh")
	if err != nil {
		return fmt.Errorf("create temp script file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer func() {
		if rerr := os.Remove(tmpPath); rerr != nil {
			logger.Warn("[WARN] Failed to remove temp script %s: %v\n", tmpPath, rerr)
		}
	}()

	if err := s.download(client, url, tmpPath); err != nil {
		return err
	}
	s.preview(tmpPath)

	cmd := exec.Command(interpreter, append([]string{tmpPath}, args...)...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	logger.Info("[INFO] Running installer script from %s...\n", url)
	out, err := s.exec.CombinedOutput(cmd)
	if err != nil {
		return fmt.Errorf("installer script %s failed: %v\nOutput: %s", url, err, out)
	}
	return nil
}

// downloader picks the first transfer client on PATH.
func (s *ScriptRunner) downloader() (string, error) {
	for _, tool := range []string{"curl", "wget"} {
		if _, err := s.exec.LookPath(tool); err == nil {
			return tool, nil
		}
	}
	return "", fmt.Errorf("%w: neither curl nor wget is available", ErrNetworkFailure)
}

func (s *ScriptRunner) download(client, url, dest string) error {
	var cmd *exec.Cmd
	switch client {
	case "wget":
		cmd = exec.Command("wget", "-qO", dest, url)
	default:
		cmd = exec.Command("curl", "-fsSL", url, "-o", dest)
	}
	out, err := s.exec.CombinedOutput(cmd)
	if err != nil {
		return fmt.Errorf("%w: download %s: %v\nOutput: %s", ErrNetworkFailure, url, err, out)
	}
	return nil
}

// preview prints the head of a downloaded script before it runs.
func (s *ScriptRunner) preview(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	lines := strings.Split(string(data), "\n")
	n := min(previewLines, len(lines))
	logger.Info("[INFO] Script preview (first %d lines):\n", n)
	for _, line := range lines[:n] {
		logger.Info("  | %s\n", line)
	}
}
