package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guangzhiyao/myzsh/internal/audit"
	"github.com/guangzhiyao/myzsh/internal/config"
	"github.com/guangzhiyao/myzsh/internal/installer"
	"github.com/guangzhiyao/myzsh/internal/logger"
)

// Flag values bound on the root command. They apply to every subcommand.
var (
	dryRun       bool
	clean        bool
	force        bool
	installFont  bool
	manifestPath string
	debug        bool
)

// ran flips to true once a command body starts. Execute uses it to tell a
// usage error (bad flag, unknown subcommand) apart from a failed run.
var ran bool

// rootCmd runs the full provisioning sequence when invoked without a
// subcommand. The granular subcommands in phases.go run single phases.
var rootCmd = &cobra.Command{
	Use:   "myzsh",
	Short: "Provision a zsh environment with oh-my-zsh, starship and atuin",
	Long: `myzsh sets up a complete zsh environment on a fresh machine: core
packages, the oh-my-zsh framework with plugins, the starship prompt, the
atuin history tool and the config files that tie them together. Runs are
idempotent; anything already in place is skipped, and overwritten config
files are backed up first.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	// Logging is configured before any command body runs.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
		audit.Setup(debug)
	},

	RunE: runPhase((*installer.Provisioner).All),
}

// options folds the bound flags into the per-run Options value. --force is
// the older spelling of --clean; either one enables clean mode.
func options() config.Options {
	return config.Options{
		DryRun:       dryRun,
		Clean:        clean || force,
		InstallFont:  installFont,
		Debug:        debug,
		ManifestPath: manifestPath,
	}
}

// runPhase wraps one provisioning phase in the shared run skeleton: load the
// manifest, build the provisioner, run the phase with staging cleaned up on
// exit and on SIGINT/SIGTERM, then print the step report.
func runPhase(phase func(*installer.Provisioner) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ran = true
		opts := options()

		man, err := config.Load(opts.ManifestPath)
		if err != nil {
			return err
		}

		p := installer.NewProvisioner(opts, man)
		defer p.Cleanup()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			logger.Warn("\n[WARN] Interrupted. Cleaning up.\n")
			p.Cleanup()
			os.Exit(1)
		}()

		err = phase(p)
		p.Report().Print()
		return err
	}
}

// Execute parses the command line and runs the selected command. The return
// value is the process exit code: 0 on success (dry-run included), 1 when a
// fatal step failed, 2 on a usage error.
func Execute() int {
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Print what would be done without changing anything")
	rootCmd.PersistentFlags().BoolVar(&clean, "clean", false, "Replace existing config files without backing them up")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Alias for --clean")
	rootCmd.PersistentFlags().BoolVar(&installFont, "install-font", false, "Also install the configured Nerd Font")
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "Path to a manifest file overriding the built-in plan")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	logger.Error("[ERROR] %v\n", err)
	if !ran {
		return 2
	}
	return 1
}
