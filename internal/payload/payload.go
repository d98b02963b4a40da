// Package payload carries the default config files shipped with the binary.
// They are written into the staging area at provision time so the deployer
// treats them exactly like user-supplied sources.
package payload

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

//go:embed starship.toml
var starshipTOML []byte

//go:embed atuin.toml
var atuinTOML []byte

// For returns the embedded payload for a named config file, or false when
// the binary ships no default for that name.
func For(name string) ([]byte, bool) {
	switch name {
	case "starship":
		return starshipTOML, true
	case "atuin":
		return atuinTOML, true
	default:
		return nil, false
	}
}

// Verify checks that data is syntactically valid for the given format.
// Unknown formats pass, the deployer has no opinion on them.
func Verify(format string, data []byte) error {
	switch format {
	case "toml":
		var v map[string]any
		if err := toml.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("invalid TOML: %w", err)
		}
	}
	return nil
}
