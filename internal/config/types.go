package config

// Options carries the flags of one invocation. It is parsed once at startup
// and passed unchanged into every component; nothing in the codebase mutates
// it afterwards.
type Options struct {
	DryRun      bool
	Clean       bool
	InstallFont bool
	Debug       bool
	ManifestPath string
}

// PackageSpec names one package to ensure via the platform package manager.
// Presence is decided by Command resolving on the search path, never by a
// package-database query, so a manually installed binary counts.
type PackageSpec struct {
	Command string `yaml:"command"`
	Package string `yaml:"package"`
	Name    string `yaml:"name"`
	Fatal   bool   `yaml:"fatal"`
}

// FrameworkSpec describes the shell framework install: its directory (the
// presence probe) and the remote install script.
type FrameworkSpec struct {
	Name        string   `yaml:"name"`
	Dir         string   `yaml:"dir"`
	URL         string   `yaml:"url"`
	Interpreter string   `yaml:"interpreter"`
	Args        []string `yaml:"args"`
	Env         []string `yaml:"env"`
}

// PluginSpec is a git repository cloned into the framework's custom plugin
// tree and fast-forwarded on later runs.
type PluginSpec struct {
	Name   string `yaml:"name"`
	Remote string `yaml:"remote"`
	Dir    string `yaml:"dir"`
}

// PromptSpec describes the prompt tool: the command that proves it is
// installed and the remote script that installs it.
type PromptSpec struct {
	Name        string   `yaml:"name"`
	Command     string   `yaml:"command"`
	URL         string   `yaml:"url"`
	Interpreter string   `yaml:"interpreter"`
	Args        []string `yaml:"args"`
}

// HistorySpec describes the history tool. Its remote installer gets a
// package-manager fallback because distributions commonly package it.
type HistorySpec struct {
	Name            string   `yaml:"name"`
	Command         string   `yaml:"command"`
	URL             string   `yaml:"url"`
	Interpreter     string   `yaml:"interpreter"`
	Args            []string `yaml:"args"`
	FallbackPackage string   `yaml:"fallback_package"`
}

// FontSpec identifies a font archive published as a GitHub release asset.
// Dir defaults to <user fonts dir>/<Name>.
type FontSpec struct {
	Name  string `yaml:"name"`
	Repo  string `yaml:"repo"`
	Tag   string `yaml:"tag"`
	Asset string `yaml:"asset"`
	Dir   string `yaml:"dir"`
}

// FileSpec is one configuration file to deploy.
//
// An empty Source selects the embedded default payload for Name; Generate
// marks the rendered zshrc. SkipIfExists and Format are config-specific
// policy applied by the orchestrator, not part of the deployer contract:
// SkipIfExists keeps an existing destination untouched outside clean mode,
// and Format "toml" requests a syntax check of the source before deploying.
type FileSpec struct {
	Name         string `yaml:"name"`
	Source       string `yaml:"source"`
	Dest         string `yaml:"dest"`
	Generate     bool   `yaml:"generate"`
	SkipIfExists bool   `yaml:"skip_if_exists"`
	Format       string `yaml:"format"`
}

// Alias is a single shell alias rendered into the generated zshrc.
type Alias struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// ZshrcSpec feeds the zshrc generator: environment exports, raw lines and
// aliases. Plugin and init-snapshot fragments are derived from the rest of
// the manifest.
type ZshrcSpec struct {
	Exports []string `yaml:"exports"`
	Lines   []string `yaml:"lines"`
	Aliases []Alias  `yaml:"aliases"`
}

// Manifest is the full provisioning plan.
type Manifest struct {
	Packages  []PackageSpec `yaml:"packages"`
	Framework FrameworkSpec `yaml:"framework"`
	Plugins   []PluginSpec  `yaml:"plugins"`
	Prompt    PromptSpec    `yaml:"prompt"`
	History   HistorySpec   `yaml:"history"`
	Font      FontSpec      `yaml:"font"`
	Configs   []FileSpec    `yaml:"configs"`
	Zshrc     ZshrcSpec     `yaml:"zshrc"`
}
