// Package zshrc renders the managed ~/.zshrc from the provisioning manifest.
// The file is assembled from ordered sections so tool init lines always land
// after the framework and machine-local overrides stay last.
package zshrc

import (
	"fmt"
	"strings"

	"github.com/adrg/xdg"
	"github.com/samber/lo"

	"github.com/guangzhiyao/myzsh/internal/config"
)

const header = `# Generated by myzsh. This file is rewritten on every run, the previous
# version is kept next to it as a timestamped backup.
# Put machine-local overrides in ~/.zshrc.local instead.`

// Render produces the full zshrc content. initFiles are cached tool init
// snapshots to source after the framework, in the order given.
func Render(m *config.Manifest, initFiles []string) []byte {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	writeExports(&b, m.Zshrc.Exports)
	writeFramework(&b, m)
	writeLines(&b, m.Zshrc.Lines)
	writeAliases(&b, m.Zshrc.Aliases)
	writeInitFiles(&b, initFiles)

	b.WriteString("\n[ -f \"$HOME/.zshrc.local\" ] && source \"$HOME/.zshrc.local\"\n")
	return []byte(b.String())
}

func writeExports(b *strings.Builder, exports []string) {
	if len(exports) == 0 {
		return
	}
	b.WriteString("\n")
	for _, e := range exports {
		fmt.Fprintf(b, "export %s\n", e)
	}
}

func writeFramework(b *strings.Builder, m *config.Manifest) {
	if m.Framework.Dir == "" {
		return
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "export ZSH=%q\n", contractHome(m.Framework.Dir))
	if m.Prompt.Name != "" {
		// The prompt tool owns the prompt, keep the framework theme out of
		// its way.
		b.WriteString("ZSH_THEME=\"\"\n")
	}
	fmt.Fprintf(b, "plugins=(%s)\n", strings.Join(pluginNames(m.Plugins), " "))
	b.WriteString("source \"$ZSH/oh-my-zsh.sh\"\n")
}

func writeLines(b *strings.Builder, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
}

func writeAliases(b *strings.Builder, aliases []config.Alias) {
	if len(aliases) == 0 {
		return
	}
	b.WriteString("\n")
	for _, a := range aliases {
		fmt.Fprintf(b, "alias %s='%s'\n", a.Name, a.Value)
	}
}

func writeInitFiles(b *strings.Builder, initFiles []string) {
	if len(initFiles) == 0 {
		return
	}
	b.WriteString("\n")
	for _, f := range initFiles {
		p := contractHome(f)
		fmt.Fprintf(b, "[ -f %q ] && source %q\n", p, p)
	}
}

// pluginNames returns the framework plugin list with git first and any
// syntax highlighter moved to the end, where zsh requires it to be sourced.
func pluginNames(plugins []config.PluginSpec) []string {
	names := lo.Map(plugins, func(p config.PluginSpec, _ int) string { return p.Name })
	highlighters := lo.Filter(names, func(n string, _ int) bool { return isHighlighter(n) })
	rest := lo.Reject(names, func(n string, _ int) bool { return isHighlighter(n) })

	out := append([]string{"git"}, rest...)
	return append(out, highlighters...)
}

func isHighlighter(name string) bool {
	return strings.Contains(name, "syntax-highlighting")
}

// contractHome rewrites an absolute path under the home directory to a
// $HOME reference so the generated file survives home moves.
func contractHome(p string) string {
	if p == xdg.Home {
		return "$HOME"
	}
	if rest, ok := strings.CutPrefix(p, xdg.Home+"/"); ok {
		return "$HOME/" + rest
	}
	return p
}
