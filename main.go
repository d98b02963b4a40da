package main

import (
	"os"

	"github.com/guangzhiyao/myzsh/cmd"
)

// main is the program entry point. It delegates to cmd.Execute(), which
// parses the command line, runs the selected provisioning phase and returns
// the process exit code.
//
// myzsh bootstraps a complete zsh environment on a fresh machine:
//   - Installs the core packages (zsh, git, curl) through the platform
//     package manager and makes zsh the login shell
//   - Installs oh-my-zsh with its custom plugins, the starship prompt and
//     the atuin history tool via their upstream installer scripts
//   - Generates a .zshrc wiring everything together and deploys the config
//     files, backing up anything it overwrites
//   - Optionally installs a Nerd Font from its GitHub release
//
// Runs are idempotent: every step probes before acting and skips what is
// already in place, so the tool can be re-run safely after a partial
// failure or a manifest change. --dry-run prints the commands a run would
// execute without touching the machine.
//
// Exit codes: 0 when the run succeeded (dry-run included), 1 when a fatal
// step failed, 2 on a usage error. Non-fatal problems (a plugin that would
// not clone, a config that failed validation) are reported as warnings and
// do not affect the exit code.
func main() {
	os.Exit(cmd.Execute())
}
