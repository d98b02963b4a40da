package installer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guangzhiyao/myzsh/internal/config"
)

var backupRe = regexp.MustCompile(`\.backup\.\d{14}$`)

func memDeployer(t *testing.T, opts config.Options) (*FileDeployer, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewFileDeployer(fs, opts), fs
}

func backupsIn(t *testing.T, fs afero.Fs, dir string) []string {
	t.Helper()
	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if backupRe.MatchString(e.Name()) {
			names = append(names, filepath.Join(dir, e.Name()))
		}
	}
	return names
}

func TestDeployFreshDestination(t *testing.T) {
	d, fs := memDeployer(t, config.Options{})
	require.NoError(t, afero.WriteFile(fs, "/staging/zshrc", []byte("new"), 0o644))

	require.NoError(t, d.Deploy("/staging/zshrc", "/home/u/.zshrc"))

	got, err := afero.ReadFile(fs, "/home/u/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	assert.Empty(t, backupsIn(t, fs, "/home/u"))
}

func TestDeployBacksUpExistingDestination(t *testing.T) {
	d, fs := memDeployer(t, config.Options{})
	require.NoError(t, afero.WriteFile(fs, "/staging/zshrc", []byte("new"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/home/u/.zshrc", []byte("old"), 0o644))

	require.NoError(t, d.Deploy("/staging/zshrc", "/home/u/.zshrc"))

	got, err := afero.ReadFile(fs, "/home/u/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	backups := backupsIn(t, fs, "/home/u")
	require.Len(t, backups, 1)
	old, err := afero.ReadFile(fs, backups[0])
	require.NoError(t, err)
	assert.Equal(t, "old", string(old), "backup must hold the previous content")
}

func TestDeployCleanSkipsBackup(t *testing.T) {
	d, fs := memDeployer(t, config.Options{Clean: true})
	require.NoError(t, afero.WriteFile(fs, "/staging/zshrc", []byte("new"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/home/u/.zshrc", []byte("old"), 0o644))

	require.NoError(t, d.Deploy("/staging/zshrc", "/home/u/.zshrc"))

	got, err := afero.ReadFile(fs, "/home/u/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	assert.Empty(t, backupsIn(t, fs, "/home/u"), "clean mode must not create backups")
}

func TestDeployMissingSourceIsNoOp(t *testing.T) {
	d, fs := memDeployer(t, config.Options{})
	require.NoError(t, afero.WriteFile(fs, "/home/u/.zshrc", []byte("old"), 0o644))

	require.NoError(t, d.Deploy("/staging/missing", "/home/u/.zshrc"))

	got, err := afero.ReadFile(fs, "/home/u/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, "old", string(got), "destination must be untouched")
}

func TestDeployDryRunTouchesNothing(t *testing.T) {
	d, fs := memDeployer(t, config.Options{DryRun: true})
	require.NoError(t, afero.WriteFile(fs, "/staging/zshrc", []byte("new"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/home/u/.zshrc", []byte("old"), 0o644))

	require.NoError(t, d.Deploy("/staging/zshrc", "/home/u/.zshrc"))

	got, err := afero.ReadFile(fs, "/home/u/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
	assert.Empty(t, backupsIn(t, fs, "/home/u"))
}

func TestDeployPreservesModeAndModtime(t *testing.T) {
	d, fs := memDeployer(t, config.Options{})
	require.NoError(t, afero.WriteFile(fs, "/staging/config.toml", []byte("x = 1"), 0o644))
	require.NoError(t, fs.Chmod("/staging/config.toml", 0o600))
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes("/staging/config.toml", stamp, stamp))

	require.NoError(t, d.Deploy("/staging/config.toml", "/home/u/.config/starship.toml"))

	info, err := fs.Stat("/home/u/.config/starship.toml")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%o", 0o600), fmt.Sprintf("%o", info.Mode().Perm()))
	assert.True(t, info.ModTime().Equal(stamp), "modtime must be preserved")
}

func TestExists(t *testing.T) {
	d, fs := memDeployer(t, config.Options{})
	assert.False(t, d.Exists("/home/u/.zshrc"))
	require.NoError(t, afero.WriteFile(fs, "/home/u/.zshrc", []byte("x"), 0o644))
	assert.True(t, d.Exists("/home/u/.zshrc"))
}
