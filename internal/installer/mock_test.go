package installer

import (
	"os/exec"
	"strings"
)

// mockExecutor scripts command results by argv substring and records
// every invocation.
type mockExecutor struct {
	calls []recordedCall
	rules []mockRule
	paths map[string]string
	root  bool
	sudo  bool
}

type recordedCall struct {
	argv []string
	env  []string
}

type mockRule struct {
	match string
	out   string
	err   error
	then  func()
}

func newMockExecutor(onPath ...string) *mockExecutor {
	m := &mockExecutor{paths: map[string]string{}}
	for _, name := range onPath {
		m.paths[name] = "/usr/bin/" + name
	}
	return m
}

// on scripts the result for every command whose joined argv contains
// match. Rules apply in the order they were added, first hit wins.
func (m *mockExecutor) on(match, out string, err error) {
	m.rules = append(m.rules, mockRule{match: match, out: out, err: err})
}

// onInstall scripts a successful command that also puts name on PATH,
// mimicking an installer.
func (m *mockExecutor) onInstall(match, name string) {
	m.rules = append(m.rules, mockRule{match: match, then: func() {
		m.paths[name] = "/usr/local/bin/" + name
	}})
}

func (m *mockExecutor) record(cmd *exec.Cmd) mockRule {
	m.calls = append(m.calls, recordedCall{argv: cmd.Args, env: cmd.Env})
	line := strings.Join(cmd.Args, " ")
	for _, rule := range m.rules {
		if strings.Contains(line, rule.match) {
			if rule.then != nil {
				rule.then()
			}
			return rule
		}
	}
	return mockRule{}
}

func (m *mockExecutor) Run(cmd *exec.Cmd) error {
	return m.record(cmd).err
}

func (m *mockExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	r := m.record(cmd)
	return []byte(r.out), r.err
}

func (m *mockExecutor) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	r := m.record(cmd)
	return []byte(r.out), r.err
}

func (m *mockExecutor) LookPath(name string) (string, error) {
	if p, ok := m.paths[name]; ok {
		return p, nil
	}
	return "", exec.ErrNotFound
}

func (m *mockExecutor) IsRoot() bool  { return m.root }
func (m *mockExecutor) CanSudo() bool { return m.sudo }

// ran reports whether any recorded call starts with prefix.
func (m *mockExecutor) ran(prefix string) bool {
	for _, line := range m.commandLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// commandLines returns each recorded argv joined with spaces, in order.
func (m *mockExecutor) commandLines() []string {
	lines := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		lines = append(lines, strings.Join(c.argv, " "))
	}
	return lines
}
