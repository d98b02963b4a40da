package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/guangzhiyao/myzsh/internal/config"
	"github.com/guangzhiyao/myzsh/internal/logger"
	"github.com/guangzhiyao/myzsh/internal/payload"
	"github.com/guangzhiyao/myzsh/internal/report"
	"github.com/guangzhiyao/myzsh/internal/system"
	"github.com/guangzhiyao/myzsh/internal/zshrc"
)

// Provisioner runs the provisioning sequence, strictly in order, one step
// at a time. Fatal steps abort the run; everything else degrades to a
// warning in the final report.
type Provisioner struct {
	opts  config.Options
	man   *config.Manifest
	exec  system.Executor
	fs    afero.Fs
	pkgs  *PackageInstaller
	snaps *InitSnapshots
	rep   *report.Report

	staging string
}

func NewProvisioner(opts config.Options, man *config.Manifest) *Provisioner {
	x := system.NewExecutor(opts.DryRun)
	return &Provisioner{
		opts:  opts,
		man:   man,
		exec:  x,
		fs:    afero.NewOsFs(),
		pkgs:  NewPackageInstaller(x),
		snaps: NewInitSnapshots(x, opts),
		rep:   report.New(),
	}
}

// Report exposes the step results collected so far.
func (p *Provisioner) Report() *report.Report {
	return p.rep
}

// Cleanup removes the run's staging directory. Safe to call repeatedly
// and from a signal handler.
func (p *Provisioner) Cleanup() {
	if p.staging == "" {
		return
	}
	if err := os.RemoveAll(p.staging); err != nil {
		logger.Warn("[WARN] Failed to remove staging dir %s: %v\n", p.staging, err)
	}
	p.staging = ""
}

// All runs the full provisioning sequence: packages and login shell, the
// opt-in font, the shell tools, then the config files.
func (p *Provisioner) All() error {
	if err := p.Packages(); err != nil {
		return err
	}
	if p.opts.InstallFont {
		if err := p.Fonts(); err != nil {
			return err
		}
	}
	if err := p.Tools(); err != nil {
		return err
	}
	return p.Configs()
}

// Packages runs the preflight checks, installs the core packages and
// switches the login shell to zsh.
func (p *Provisioner) Packages() error {
	if err := p.preflight(); err != nil {
		p.rep.Failed("preflight", err)
		return err
	}
	p.rep.Ok("preflight")

	for _, spec := range p.man.Packages {
		installed, err := p.pkgs.Install(spec)
		switch {
		case err != nil && spec.Fatal:
			p.rep.Failed("package "+spec.Package, err)
			return fmt.Errorf("install %s: %w", spec.Package, err)
		case err != nil:
			logger.Warn("[WARN] Could not install %s: %v\n", spec.Package, err)
			p.rep.Warned("package "+spec.Package, err)
		case installed:
			logger.Success("[INFO] Installed %s\n", spec.Package)
			p.rep.Ok("package " + spec.Package)
		default:
			logger.Info("[INFO] %s already present. Skipping.\n", spec.Name)
			p.rep.Skipped("package "+spec.Package, "already present")
		}
	}

	changed, err := EnsureDefaultShell(p.exec)
	switch {
	case err != nil:
		logger.Warn("[WARN] Could not change login shell: %v\n", err)
		p.rep.Warned("default shell", err)
	case changed:
		logger.Success("[INFO] Login shell changed to zsh\n")
		p.rep.Ok("default shell")
	default:
		logger.Info("[INFO] Login shell is already zsh. Skipping.\n")
		p.rep.Skipped("default shell", "already zsh")
	}
	return nil
}

// Fonts installs the configured Nerd Font. Every failure here is a
// warning, fonts never block provisioning.
func (p *Provisioner) Fonts() error {
	if p.man.Font.Name == "" {
		p.rep.Skipped("font", "not configured")
		return nil
	}

	staging, err := p.ensureStaging()
	if err != nil {
		logger.Warn("[WARN] %v\n", err)
		p.rep.Warned("font "+p.man.Font.Name, err)
		return nil
	}

	fonts := NewFontInstaller(p.exec, p.opts)
	if err := fonts.Install(p.man.Font, staging); err != nil {
		logger.Warn("[WARN] Font install failed: %v\n", err)
		p.rep.Warned("font "+p.man.Font.Name, err)
		return nil
	}
	p.rep.Ok("font " + p.man.Font.Name)
	return nil
}

// Tools installs the shell framework, its plugins, the prompt tool and
// the history tool.
func (p *Provisioner) Tools() error {
	scripts := NewScriptRunner(p.exec, p.opts)

	if err := p.framework(scripts); err != nil {
		return err
	}

	repos := NewRepoSync(p.exec)
	for _, plugin := range p.man.Plugins {
		state, err := repos.Sync(plugin.Remote, plugin.Dir)
		if err != nil {
			logger.Warn("[WARN] Plugin %s: %v\n", plugin.Name, err)
			p.rep.Warned("plugin "+plugin.Name, err)
			continue
		}
		logger.Success("[INFO] Plugin %s %s\n", plugin.Name, state)
		p.rep.Add("plugin "+plugin.Name, report.StatusOK, state.String())
	}

	if err := p.prompt(scripts); err != nil {
		return err
	}
	p.history(scripts)
	return nil
}

// framework installs the shell framework when its directory is absent.
// An install failure is fatal only when the directory stayed absent.
func (p *Provisioner) framework(scripts *ScriptRunner) error {
	fw := p.man.Framework
	if fw.URL == "" {
		return nil
	}

	if dirExists(fw.Dir) {
		logger.Info("[INFO] %s already installed at %s. Skipping.\n", fw.Name, fw.Dir)
		p.rep.Skipped("framework "+fw.Name, "already installed")
		return nil
	}

	logger.Info("[INFO] Installing %s...\n", fw.Name)
	if err := scripts.Run(fw.URL, fw.Interpreter, fw.Args, fw.Env); err != nil {
		if !p.opts.DryRun && !dirExists(fw.Dir) {
			p.rep.Failed("framework "+fw.Name, err)
			return fmt.Errorf("install %s: %w", fw.Name, err)
		}
		p.rep.Warned("framework "+fw.Name, err)
		return nil
	}
	p.rep.Ok("framework " + fw.Name)
	return nil
}

// prompt installs the prompt tool. Fatal when its command is still
// missing after the attempt.
func (p *Provisioner) prompt(scripts *ScriptRunner) error {
	pr := p.man.Prompt
	if pr.Name == "" {
		return nil
	}

	if p.pkgs.Have(pr.Command) {
		logger.Info("[INFO] %s already installed. Skipping.\n", pr.Name)
		p.rep.Skipped("prompt "+pr.Name, "already installed")
		return nil
	}

	logger.Info("[INFO] Installing %s...\n", pr.Name)
	err := scripts.Run(pr.URL, pr.Interpreter, pr.Args, nil)
	if p.opts.DryRun {
		p.rep.Ok("prompt " + pr.Name)
		return nil
	}
	if !p.pkgs.Have(pr.Command) {
		if err == nil {
			err = fmt.Errorf("%s still not on PATH after install", pr.Command)
		}
		p.rep.Failed("prompt "+pr.Name, err)
		return fmt.Errorf("install %s: %w", pr.Name, err)
	}
	if err != nil {
		p.rep.Warned("prompt "+pr.Name, err)
		return nil
	}
	p.rep.Ok("prompt " + pr.Name)
	return nil
}

// history installs the history tool: installer script first, package
// manager fallback second. Never fatal.
func (p *Provisioner) history(scripts *ScriptRunner) {
	h := p.man.History
	if h.Name == "" {
		return
	}

	if p.pkgs.Have(h.Command) {
		logger.Info("[INFO] %s already installed. Skipping.\n", h.Name)
		p.rep.Skipped("history "+h.Name, "already installed")
		return
	}

	var scriptErr error
	if h.URL != "" {
		logger.Info("[INFO] Installing %s...\n", h.Name)
		scriptErr = scripts.Run(h.URL, h.Interpreter, h.Args, nil)
		if scriptErr == nil {
			p.rep.Ok("history " + h.Name)
			return
		}
		logger.Warn("[WARN] %s installer script failed: %v\n", h.Name, scriptErr)
	}

	if h.FallbackPackage == "" {
		p.rep.Warned("history "+h.Name, scriptErr)
		return
	}

	logger.Info("[INFO] Falling back to the package manager for %s...\n", h.Name)
	spec := config.PackageSpec{Command: h.Command, Package: h.FallbackPackage, Name: h.Name}
	if _, err := p.pkgs.Install(spec); err != nil {
		logger.Warn("[WARN] Could not install %s: %v\n", h.Name, err)
		p.rep.Warned("history "+h.Name, err)
		return
	}
	p.rep.Add("history "+h.Name, report.StatusOK, "installed via package manager")
}

// Configs captures init snapshots, renders the zshrc and deploys every
// config file. A single failed deploy does not stop the others.
func (p *Provisioner) Configs() error {
	staging, err := p.ensureStaging()
	if err != nil {
		p.rep.Failed("configs", err)
		return err
	}

	initFiles := p.snaps.Capture(p.man)

	deployer := NewFileDeployer(p.fs, p.opts)
	for _, c := range p.man.Configs {
		src, err := p.stageConfig(c, staging, initFiles)
		if err != nil {
			logger.Warn("[WARN] Config %s: %v\n", c.Name, err)
			p.rep.Warned("config "+c.Name, err)
			continue
		}

		if c.SkipIfExists && deployer.Exists(c.Dest) {
			logger.Info("[INFO] %s already exists. Leaving it untouched.\n", c.Dest)
			p.rep.Skipped("config "+c.Name, "destination exists")
			continue
		}

		if err := p.checkFormat(c, src); err != nil {
			logger.Warn("[WARN] %s failed validation: %v. Skipping deploy.\n", src, err)
			p.rep.Warned("config "+c.Name, err)
			continue
		}

		if err := deployer.Deploy(src, c.Dest); err != nil {
			logger.Warn("[WARN] %v\n", err)
			p.rep.Warned("config "+c.Name, err)
			continue
		}
		p.rep.Ok("config " + c.Name)
	}
	return nil
}

// stageConfig returns the source path to deploy for c, writing generated
// and embedded payloads into the staging dir first.
func (p *Provisioner) stageConfig(c config.FileSpec, staging string, initFiles []string) (string, error) {
	switch {
	case c.Generate:
		src := filepath.Join(staging, c.Name)
		if err := os.WriteFile(src, zshrc.Render(p.man, initFiles), 0644); err != nil {
			return "", fmt.Errorf("render %s: %w", c.Name, err)
		}
		return src, nil
	case c.Source == "":
		data, ok := payload.For(c.Name)
		if !ok {
			return "", fmt.Errorf("no source and no embedded default for %s", c.Name)
		}
		name := c.Name
		if c.Format != "" {
			name += "." + c.Format
		}
		src := filepath.Join(staging, name)
		if err := os.WriteFile(src, data, 0644); err != nil {
			return "", fmt.Errorf("stage %s: %w", c.Name, err)
		}
		return src, nil
	default:
		return c.Source, nil
	}
}

// checkFormat syntax-checks sources whose manifest entry names a format.
func (p *Provisioner) checkFormat(c config.FileSpec, src string) error {
	if c.Format == "" {
		return nil
	}
	data, err := afero.ReadFile(p.fs, src)
	if err != nil {
		return nil
	}
	return payload.Verify(c.Format, data)
}

// preflight makes sure the tools later steps cannot run without are
// present or at least installable.
func (p *Provisioner) preflight() error {
	if !p.pkgs.Have("git") {
		if _, err := p.pkgs.manager(); err != nil {
			return fmt.Errorf("git is not installed and cannot be: %w", err)
		}
		logger.Info("[INFO] git missing, will be installed with the core packages\n")
	}
	if !p.pkgs.Have("curl") && !p.pkgs.Have("wget") {
		logger.Warn("[WARN] Neither curl nor wget found. Remote installer steps may fail.\n")
	}
	return nil
}

func (p *Provisioner) ensureStaging() (string, error) {
	if p.staging != "" {
		return p.staging, nil
	}
	dir, err := os.MkdirTemp("", "myzsh-")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	logger.Debug("[DEBUG] Staging dir %s\n", dir)
	p.staging = dir
	return dir, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
