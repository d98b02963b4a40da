package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/guangzhiyao/myzsh/internal/paths"
)

// Load reads a provisioning manifest from a YAML file, fills defaults and
// validates it. An empty path returns the built-in default plan.
func Load(path string) (*Manifest, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	m.normalize()
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// Default returns the built-in provisioning plan: zsh with oh-my-zsh, the
// autosuggestions and syntax-highlighting plugins, the starship prompt, the
// atuin history manager and a Nerd Font.
func Default() *Manifest {
	m := &Manifest{
		Packages: []PackageSpec{
			{Command: "zsh", Package: "zsh", Name: "zsh shell", Fatal: true},
			{Command: "git", Package: "git", Name: "git", Fatal: true},
			{Command: "curl", Package: "curl", Name: "curl"},
		},
		Framework: FrameworkSpec{
			Name:        "oh-my-zsh",
			Dir:         "~/.oh-my-zsh",
			URL:         "https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh",
			Interpreter: "sh",
			Args:        []string{"--unattended"},
			Env:         []string{"RUNZSH=no", "CHSH=no", "KEEP_ZSHRC=yes"},
		},
		Plugins: []PluginSpec{
			{
				Name:   "zsh-autosuggestions",
				Remote: "https://github.com/zsh-users/zsh-autosuggestions.git",
				Dir:    "~/.oh-my-zsh/custom/plugins/zsh-autosuggestions",
			},
			{
				Name:   "zsh-syntax-highlighting",
				Remote: "https://github.com/zsh-users/zsh-syntax-highlighting.git",
				Dir:    "~/.oh-my-zsh/custom/plugins/zsh-syntax-highlighting",
			},
		},
		Prompt: PromptSpec{
			Name:        "starship",
			Command:     "starship",
			URL:         "https://starship.rs/install.sh",
			Interpreter: "sh",
			Args:        []string{"-s", "--", "-y"},
		},
		History: HistorySpec{
			Name:            "atuin",
			Command:         "atuin",
			URL:             "https://setup.atuin.sh",
			Interpreter:     "sh",
			FallbackPackage: "atuin",
		},
		Font: FontSpec{
			Name:  "JetBrainsMono",
			Repo:  "ryanoasis/nerd-fonts",
			Tag:   "v3.2.1",
			Asset: "JetBrainsMono.zip",
		},
		Configs: []FileSpec{
			{Name: "zshrc", Dest: "~/.zshrc", Generate: true},
			{Name: "starship", Dest: "~/.config/starship.toml", Format: "toml"},
			{Name: "atuin", Dest: "~/.config/atuin/config.toml", Format: "toml", SkipIfExists: true},
		},
		Zshrc: ZshrcSpec{
			Exports: []string{"EDITOR=vim", "LANG=en_US.UTF-8"},
			Aliases: []Alias{
				{Name: "ll", Value: "ls -alh"},
				{Name: "la", Value: "ls -A"},
				{Name: "gs", Value: "git status"},
			},
		},
	}
	m.normalize()
	return m
}

// normalize expands ~ in every path field and fills interpreter and
// directory defaults so the rest of the codebase never re-checks them.
func (m *Manifest) normalize() {
	m.Framework.Dir = paths.Expand(m.Framework.Dir)
	if m.Framework.Interpreter == "" && m.Framework.URL != "" {
		m.Framework.Interpreter = "sh"
	}
	for i := range m.Plugins {
		m.Plugins[i].Dir = paths.Expand(m.Plugins[i].Dir)
	}
	if m.Prompt.Interpreter == "" && m.Prompt.URL != "" {
		m.Prompt.Interpreter = "sh"
	}
	if m.History.Interpreter == "" && m.History.URL != "" {
		m.History.Interpreter = "sh"
	}
	if m.Font.Dir == "" && m.Font.Name != "" {
		m.Font.Dir = filepath.Join(paths.FontsDir(), m.Font.Name)
	} else {
		m.Font.Dir = paths.Expand(m.Font.Dir)
	}
	for i := range m.Configs {
		m.Configs[i].Source = paths.Expand(m.Configs[i].Source)
		m.Configs[i].Dest = paths.Expand(m.Configs[i].Dest)
	}
}

// validate rejects manifests with missing required fields. It reports the
// first problem found with enough context to fix it.
func (m *Manifest) validate() error {
	for i, p := range m.Packages {
		if p.Command == "" || p.Package == "" {
			return fmt.Errorf("packages[%d]: command and package are required", i)
		}
	}
	if m.Framework.Name != "" || m.Framework.URL != "" {
		if m.Framework.Dir == "" || m.Framework.URL == "" {
			return fmt.Errorf("framework: dir and url are required")
		}
	}
	for i, p := range m.Plugins {
		if p.Remote == "" || p.Dir == "" {
			return fmt.Errorf("plugins[%d]: remote and dir are required", i)
		}
	}
	if m.Prompt.Name != "" {
		if m.Prompt.Command == "" || m.Prompt.URL == "" {
			return fmt.Errorf("prompt: command and url are required")
		}
	}
	if m.History.Name != "" {
		if m.History.Command == "" {
			return fmt.Errorf("history: command is required")
		}
		if m.History.URL == "" && m.History.FallbackPackage == "" {
			return fmt.Errorf("history: url or fallback_package is required")
		}
	}
	if m.Font.Repo != "" || m.Font.Asset != "" {
		if m.Font.Name == "" || m.Font.Repo == "" || m.Font.Tag == "" || m.Font.Asset == "" {
			return fmt.Errorf("font: name, repo, tag and asset are required")
		}
	}
	for i, c := range m.Configs {
		if c.Name == "" || c.Dest == "" {
			return fmt.Errorf("configs[%d]: name and dest are required", i)
		}
	}
	return nil
}
