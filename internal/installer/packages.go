package installer

import (
	"fmt"
	"os/exec"

	"github.com/guangzhiyao/myzsh/internal/config"
	"github.com/guangzhiyao/myzsh/internal/logger"
	"github.com/guangzhiyao/myzsh/internal/system"
)

// packageManager describes one supported platform package manager.
type packageManager struct {
	name      string
	needsRoot bool
	update    []string // index refresh, run at most once per process
	install   []string // package name gets appended
}

// Detection order is deliberate: native managers before brew.
var packageManagers = []packageManager{
	{name: "apt-get", needsRoot: true, update: []string{"apt-get", "update"}, install: []string{"apt-get", "install", "-y"}},
	{name: "pacman", needsRoot: true, install: []string{"pacman", "-Sy", "--noconfirm"}},
	{name: "dnf", needsRoot: true, install: []string{"dnf", "install", "-y"}},
	{name: "brew", install: []string{"brew", "install"}},
}

// PackageInstaller installs system packages with whichever supported
// package manager resolves on PATH first.
type PackageInstaller struct {
	exec    system.Executor
	mgr     *packageManager
	updated bool
}

func NewPackageInstaller(x system.Executor) *PackageInstaller {
	return &PackageInstaller{exec: x}
}

// Have reports whether the command a package provides resolves on PATH.
// Command presence is the only installed-ness check, never a package
// database query.
func (p *PackageInstaller) Have(command string) bool {
	_, err := p.exec.LookPath(command)
	return err == nil
}

// Install makes sure the package behind spec is available. The returned
// bool is false when the command was already present and nothing ran.
func (p *PackageInstaller) Install(spec config.PackageSpec) (bool, error) {
	if p.Have(spec.Command) {
		logger.Debug("[DEBUG] %s already on PATH, nothing to install\n", spec.Command)
		return false, nil
	}

	mgr, err := p.manager()
	if err != nil {
		return false, err
	}

	if len(mgr.update) > 0 && !p.updated {
		p.updated = true
		argv, err := p.elevate(mgr, mgr.update)
		if err != nil {
			return false, err
		}
		logger.Info("[INFO] Refreshing %s package index...\n", mgr.name)
		if out, err := p.exec.CombinedOutput(exec.Command(argv[0], argv[1:]...)); err != nil {
			logger.Warn("[WARN] %s update failed: %v\nOutput: %s\n", mgr.name, err, out)
		}
	}

	argv, err := p.elevate(mgr, append(append([]string{}, mgr.install...), spec.Package))
	if err != nil {
		return false, err
	}
	logger.Info("[INFO] Installing %s with %s...\n", spec.Package, mgr.name)
	out, err := p.exec.CombinedOutput(exec.Command(argv[0], argv[1:]...))
	if err != nil {
		return false, fmt.Errorf("install %s with %s: %v\nOutput: %s", spec.Package, mgr.name, err, out)
	}
	return true, nil
}

// manager picks the first supported package manager on PATH, cached for
// the rest of the run.
func (p *PackageInstaller) manager() (*packageManager, error) {
	if p.mgr != nil {
		return p.mgr, nil
	}
	for i := range packageManagers {
		if _, err := p.exec.LookPath(packageManagers[i].name); err == nil {
			logger.Debug("[DEBUG] Using package manager %s\n", packageManagers[i].name)
			p.mgr = &packageManagers[i]
			return p.mgr, nil
		}
	}
	return nil, fmt.Errorf("%w: no supported package manager found (apt-get, pacman, dnf, brew)", ErrDependencyMissing)
}

// elevate prefixes sudo when the manager needs root and the process is
// not running as root.
func (p *PackageInstaller) elevate(mgr *packageManager, argv []string) ([]string, error) {
	if !mgr.needsRoot || p.exec.IsRoot() {
		return argv, nil
	}
	if p.exec.CanSudo() {
		return append([]string{"sudo"}, argv...), nil
	}
	return nil, fmt.Errorf("%w: %s needs root and sudo is not available", ErrPermissionDenied, mgr.name)
}
