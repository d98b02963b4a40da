package system

import (
	"strings"
)

// Quote returns arg quoted for display in a POSIX shell. Arguments composed
// only of safe characters are returned as-is; everything else is wrapped in
// single quotes with embedded single quotes escaped. The result preserves
// argument boundaries exactly when pasted back into a shell.
func Quote(arg string) string {
	if arg == "" {
		return "''"
	}
	if isSafe(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// QuoteArgs renders an argv as a single display string.
func QuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}

func isSafe(arg string) bool {
	for _, r := range arg {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case strings.ContainsRune("@%+=:,./-_", r):
		default:
			return false
		}
	}
	return true
}
