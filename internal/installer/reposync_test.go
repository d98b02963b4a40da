package installer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pluginRemote = "https://github.com/zsh-users/zsh-autosuggestions.git"

func checkoutDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "zsh-autosuggestions")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func TestSyncClonesWhenAbsent(t *testing.T) {
	m := newMockExecutor("git")
	r := NewRepoSync(m)
	dir := filepath.Join(t.TempDir(), "zsh-autosuggestions")

	state, err := r.Sync(pluginRemote, dir)
	require.NoError(t, err)
	assert.Equal(t, ClonedFresh, state)

	lines := m.commandLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "git clone --depth 1 "+pluginRemote+" "+dir, lines[0])
}

func TestSyncCloneFailure(t *testing.T) {
	m := newMockExecutor("git")
	m.on("git clone", "fatal: unable to access", errors.New("exit status 128"))
	r := NewRepoSync(m)

	state, err := r.Sync(pluginRemote, filepath.Join(t.TempDir(), "plugin"))
	assert.Equal(t, Absent, state)
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.ErrorContains(t, err, "unable to access")
}

func TestSyncUpdatesExistingCheckout(t *testing.T) {
	m := newMockExecutor("git")
	r := NewRepoSync(m)
	dir := checkoutDir(t)

	state, err := r.Sync(pluginRemote, dir)
	require.NoError(t, err)
	assert.Equal(t, UpdatedCleanly, state)

	lines := m.commandLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "git -C "+dir+" fetch --depth 1 origin", lines[0])
	assert.Equal(t, "git -C "+dir+" merge --ff-only --autostash FETCH_HEAD", lines[1])
}

func TestSyncFetchFailureLeavesCheckoutAlone(t *testing.T) {
	m := newMockExecutor("git")
	m.on("git -C", "could not resolve host", errors.New("exit status 128"))
	r := NewRepoSync(m)

	state, err := r.Sync(pluginRemote, checkoutDir(t))
	assert.Equal(t, FetchFailed, state)
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.False(t, m.ran("git -C "+pluginRemote+" merge"))
	require.Len(t, m.calls, 1, "merge must not run after a failed fetch")
}

func TestSyncMergeConflict(t *testing.T) {
	m := newMockExecutor("git")
	dir := checkoutDir(t)
	m.on("git -C "+dir+" merge", "fatal: Not possible to fast-forward", errors.New("exit status 128"))
	r := NewRepoSync(m)

	state, err := r.Sync(pluginRemote, dir)
	assert.Equal(t, UpdateConflict, state)
	assert.ErrorIs(t, err, ErrMergeConflict)
}

func TestSyncNeverForces(t *testing.T) {
	m := newMockExecutor("git")
	r := NewRepoSync(m)

	_, err := r.Sync(pluginRemote, checkoutDir(t))
	require.NoError(t, err)
	for _, line := range m.commandLines() {
		assert.NotContains(t, line, "--force")
		assert.NotContains(t, line, "reset")
	}
}
