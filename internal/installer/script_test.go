package installer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guangzhiyao/myzsh/internal/config"
)

const installURL = "https://starship.rs/install.sh"

func TestRunNoTransferClient(t *testing.T) {
	m := newMockExecutor()
	s := NewScriptRunner(m, config.Options{})

	err := s.Run(installURL, "sh", nil, nil)
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.Empty(t, m.calls)
}

func TestRunDownloadsWithCurlAndExecutes(t *testing.T) {
	m := newMockExecutor("curl")
	s := NewScriptRunner(m, config.Options{})

	err := s.Run(installURL, "sh", []string{"-s", "--", "-y", "a value with spaces"}, nil)
	require.NoError(t, err)

	require.Len(t, m.calls, 2)
	curl := m.calls[0].argv
	require.Len(t, curl, 5)
	assert.Equal(t, []string{"curl", "-fsSL", installURL, "-o"}, curl[:4])
	tmpPath := curl[4]

	run := m.calls[1].argv
	assert.Equal(t, []string{"sh", tmpPath, "-s", "--", "-y", "a value with spaces"}, run,
		"argument boundaries must reach the interpreter verbatim")

	assert.NoFileExists(t, tmpPath, "temp script must be removed after the run")
}

func TestRunFallsBackToWget(t *testing.T) {
	m := newMockExecutor("wget")
	s := NewScriptRunner(m, config.Options{})

	err := s.Run(installURL, "sh", nil, nil)
	require.NoError(t, err)

	wget := m.calls[0].argv
	require.Len(t, wget, 4)
	assert.Equal(t, "wget", wget[0])
	assert.Equal(t, "-qO", wget[1])
	assert.Equal(t, installURL, wget[3])
}

func TestRunAppendsEnvironment(t *testing.T) {
	m := newMockExecutor("curl")
	s := NewScriptRunner(m, config.Options{})

	err := s.Run(installURL, "sh", []string{"--unattended"}, []string{"RUNZSH=no", "CHSH=no"})
	require.NoError(t, err)

	run := m.calls[1]
	assert.Contains(t, run.env, "RUNZSH=no")
	assert.Contains(t, run.env, "CHSH=no")
	assert.Greater(t, len(run.env), 2, "process environment must be inherited, not replaced")
}

func TestRunDownloadFailure(t *testing.T) {
	m := newMockExecutor("curl")
	m.on("curl", "curl: (6) Could not resolve host", errors.New("exit status 6"))
	s := NewScriptRunner(m, config.Options{})

	err := s.Run(installURL, "sh", nil, nil)
	assert.ErrorIs(t, err, ErrNetworkFailure)
	require.Len(t, m.calls, 1, "the script must not run after a failed download")
}

func TestRunScriptFailureCarriesOutput(t *testing.T) {
	m := newMockExecutor("curl")
	m.on("curl", "", nil)
	m.on("sh", "install.sh: line 3: unexpected token", errors.New("exit status 2"))
	s := NewScriptRunner(m, config.Options{})

	err := s.Run(installURL, "sh", nil, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unexpected token")
}

func TestRunDryRunExecutesNothing(t *testing.T) {
	m := newMockExecutor("curl")
	s := NewScriptRunner(m, config.Options{DryRun: true})

	err := s.Run(installURL, "sh", []string{"--unattended"}, []string{"RUNZSH=no"})
	require.NoError(t, err)
	assert.Empty(t, m.calls, "dry-run must not download or execute")
}
