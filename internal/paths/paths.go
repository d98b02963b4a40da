// Package paths centralizes the filesystem locations myzsh reads and writes.
// It follows the XDG Base Directory specification via adrg/xdg.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// AppDirName is the directory name used under the XDG cache and state homes.
const AppDirName = "myzsh"

// Home returns the current user's home directory.
func Home() string {
	return xdg.Home
}

// ConfigHome returns the XDG config home (~/.config by default).
func ConfigHome() string {
	return xdg.ConfigHome
}

// CacheDir returns the myzsh cache directory, where captured init snapshots
// are stored.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, AppDirName)
}

// StateDir returns the myzsh state directory, which holds the audit log.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the audit log location.
func LogFilePath() string {
	return filepath.Join(StateDir(), "myzsh.log")
}

// FontsDir returns the per-user font directory (~/.local/share/fonts).
func FontsDir() string {
	return filepath.Join(xdg.DataHome, "fonts")
}

// Expand resolves a leading ~ or ~/ in p to the user's home directory.
// Other paths are returned unchanged.
func Expand(p string) string {
	if p == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(xdg.Home, p[2:])
	}
	return p
}
