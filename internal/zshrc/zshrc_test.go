package zshrc

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guangzhiyao/myzsh/internal/config"
)

func TestRenderDefaultManifest(t *testing.T) {
	out := string(Render(config.Default(), nil))

	assert.True(t, strings.HasPrefix(out, "# Generated by myzsh"))
	assert.Contains(t, out, "export ZSH=\"$HOME/.oh-my-zsh\"")
	assert.Contains(t, out, "ZSH_THEME=\"\"")
	assert.Contains(t, out, "plugins=(git zsh-autosuggestions zsh-syntax-highlighting)")
	assert.Contains(t, out, "source \"$ZSH/oh-my-zsh.sh\"")
	assert.Contains(t, out, "alias ll='ls -alh'")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "[ -f \"$HOME/.zshrc.local\" ] && source \"$HOME/.zshrc.local\"", lines[len(lines)-1],
		"local overrides must be sourced last")
}

func TestRenderHighlighterAlwaysLast(t *testing.T) {
	m := config.Default()
	// Deliberately listed first in the manifest.
	m.Plugins = []config.PluginSpec{
		{Name: "zsh-syntax-highlighting", Remote: "r", Dir: "d"},
		{Name: "zsh-autosuggestions", Remote: "r", Dir: "d"},
	}

	out := string(Render(m, nil))
	assert.Contains(t, out, "plugins=(git zsh-autosuggestions zsh-syntax-highlighting)")
}

func TestRenderInitFiles(t *testing.T) {
	initA := filepath.Join(xdg.Home, ".cache", "myzsh", "starship-init.zsh")
	initB := filepath.Join(xdg.Home, ".cache", "myzsh", "atuin-init.zsh")

	out := string(Render(config.Default(), []string{initA, initB}))

	guardA := "[ -f \"$HOME/.cache/myzsh/starship-init.zsh\" ] && source \"$HOME/.cache/myzsh/starship-init.zsh\""
	guardB := "[ -f \"$HOME/.cache/myzsh/atuin-init.zsh\" ] && source \"$HOME/.cache/myzsh/atuin-init.zsh\""
	assert.Contains(t, out, guardA)
	assert.Contains(t, out, guardB)

	posFramework := strings.Index(out, "oh-my-zsh.sh")
	posA := strings.Index(out, guardA)
	posB := strings.Index(out, guardB)
	posLocal := strings.Index(out, ".zshrc.local")
	require.True(t, posFramework < posA, "init lines come after the framework")
	require.True(t, posA < posB, "init lines keep manifest order")
	require.True(t, posB < posLocal, "local overrides stay last")
}

func TestRenderWithoutFramework(t *testing.T) {
	m := &config.Manifest{
		Zshrc: config.ZshrcSpec{
			Exports: []string{"EDITOR=vim"},
			Lines:   []string{"setopt autocd", "bindkey -e"},
		},
	}

	out := string(Render(m, nil))
	assert.NotContains(t, out, "export ZSH=")
	assert.NotContains(t, out, "plugins=(")
	assert.Contains(t, out, "export EDITOR=vim")
	assert.Contains(t, out, "setopt autocd\nbindkey -e\n")
}

func TestContractHome(t *testing.T) {
	assert.Equal(t, "$HOME", contractHome(xdg.Home))
	assert.Equal(t, "$HOME/.zshrc", contractHome(filepath.Join(xdg.Home, ".zshrc")))
	assert.Equal(t, "/etc/zshrc", contractHome("/etc/zshrc"))
}
