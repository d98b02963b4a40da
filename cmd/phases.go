package cmd

import (
	"github.com/spf13/cobra"

	"github.com/guangzhiyao/myzsh/internal/installer"
)

// packagesCmd installs the core packages and sets the login shell.
var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "Install core packages and set zsh as the login shell",
	RunE:  runPhase((*installer.Provisioner).Packages),
}

// toolsCmd installs the framework, plugins, prompt and history tool.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Install oh-my-zsh, its plugins, starship and atuin",
	RunE:  runPhase((*installer.Provisioner).Tools),
}

// configsCmd deploys the config files, including the generated zshrc.
var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "Generate and deploy the config files",
	RunE:  runPhase((*installer.Provisioner).Configs),
}

// fontsCmd installs the configured font. Unlike the full run it does not
// need --install-font; asking for the subcommand is the opt-in.
var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "Install the configured Nerd Font",
	RunE:  runPhase((*installer.Provisioner).Fonts),
}

// init registers the phase subcommands with the root command.
func init() {
	rootCmd.AddCommand(packagesCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(configsCmd)
	rootCmd.AddCommand(fontsCmd)
}
