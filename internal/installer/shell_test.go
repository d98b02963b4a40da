package installer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultShellAlreadyZsh(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")
	m := newMockExecutor("zsh")

	changed, err := EnsureDefaultShell(m)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, m.calls)
}

func TestEnsureDefaultShellChangesFromBash(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")
	m := newMockExecutor("zsh", "chsh")

	changed, err := EnsureDefaultShell(m)
	require.NoError(t, err)
	assert.True(t, changed)

	lines := m.commandLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "chsh -s /usr/bin/zsh", lines[0])
}

func TestEnsureDefaultShellZshMissing(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")
	m := newMockExecutor()

	_, err := EnsureDefaultShell(m)
	assert.ErrorIs(t, err, ErrDependencyMissing)
}

func TestEnsureDefaultShellChshFailure(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")
	m := newMockExecutor("zsh")
	m.on("chsh", "PAM: Authentication failure", errors.New("exit status 1"))

	changed, err := EnsureDefaultShell(m)
	assert.False(t, changed)
	require.Error(t, err)
	assert.ErrorContains(t, err, "Authentication failure")
}

func TestCurrentShellFallsBackToPasswd(t *testing.T) {
	t.Setenv("SHELL", "")
	m := newMockExecutor()
	m.on("getent passwd", "u:x:1000:1000::/home/u:/usr/bin/zsh", nil)

	assert.Equal(t, "/usr/bin/zsh", currentShell(m))
	assert.True(t, m.ran("getent passwd"))
}
