package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/guangzhiyao/myzsh/internal/config"
	"github.com/guangzhiyao/myzsh/internal/logger"
)

const backupStamp = "20060102150405"

// FileDeployer copies config files into place. Whatever it would
// overwrite is preserved first as <dest>.backup.<timestamp>, unless clean
// mode asked for plain replacement.
type FileDeployer struct {
	fs   afero.Fs
	opts config.Options
}

func NewFileDeployer(fs afero.Fs, opts config.Options) *FileDeployer {
	return &FileDeployer{fs: fs, opts: opts}
}

// Exists reports whether path is present on the deploy filesystem.
func (d *FileDeployer) Exists(path string) bool {
	_, err := d.fs.Stat(path)
	return err == nil
}

// Deploy puts src at dst. A missing source is a warning and a no-op. A
// failed backup is a warning and the deploy continues. Only the final
// copy can fail the call.
func (d *FileDeployer) Deploy(src, dst string) error {
	if !d.Exists(src) {
		logger.Warn("[WARN] Source %s missing. Skipping deploy of %s.\n", src, dst)
		return nil
	}

	switch {
	case d.Exists(dst) && d.opts.Clean:
		if d.opts.DryRun {
			logger.Info("[DRY-RUN] would remove %s\n", dst)
		} else if err := d.fs.Remove(dst); err != nil {
			logger.Warn("[WARN] Failed to remove %s: %v\n", dst, err)
		} else {
			logger.Debug("[DEBUG] Removed %s without backup\n", dst)
		}
	case d.Exists(dst):
		backup := fmt.Sprintf("%s.backup.%s", dst, time.Now().Format(backupStamp))
		if d.opts.DryRun {
			logger.Info("[DRY-RUN] would back up %s to %s\n", dst, backup)
		} else if err := d.copyPreserving(dst, backup); err != nil {
			logger.Warn("[WARN] Backup of %s failed: %v. Deploying anyway.\n", dst, err)
		} else {
			logger.Info("[INFO] Backed up %s to %s\n", dst, backup)
		}
	}

	if d.opts.DryRun {
		logger.Info("[DRY-RUN] would copy %s to %s\n", src, dst)
		return nil
	}

	if err := d.copyPreserving(src, dst); err != nil {
		return fmt.Errorf("%w: deploy %s to %s: %v", ErrCopyFailure, src, dst, err)
	}
	logger.Success("[INFO] Deployed %s\n", dst)
	return nil
}

// copyPreserving copies a file keeping its mode and modtime, creating
// parent directories as needed.
func (d *FileDeployer) copyPreserving(src, dst string) error {
	info, err := d.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := d.fs.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	if err := d.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	out, err := d.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := d.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := d.fs.Chtimes(dst, time.Now(), info.ModTime()); err != nil {
		logger.Debug("[DEBUG] Could not preserve modtime on %s: %v\n", dst, err)
	}
	return nil
}
