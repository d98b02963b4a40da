// Package audit records what a provisioning run actually did: every external
// command, every step outcome. The log lands in the XDG state directory so a
// run can be reconstructed after the fact.
package audit

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/guangzhiyao/myzsh/internal/paths"
)

// Setup configures the global audit logger. The log file is opened in append
// mode under the state directory; with debug enabled a console writer is
// added as well. Failure to open the log file degrades to console-only (or a
// no-op logger) rather than failing the run. The returned path is the log
// file location, empty if it could not be opened.
func Setup(debug bool) string {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var writers []io.Writer
	if debug {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		})
	}

	logPath := paths.LogFilePath()
	file, err := openLogFile(logPath)
	if err != nil {
		logPath = ""
	} else {
		writers = append(writers, file)
	}

	if len(writers) == 0 {
		log.Logger = zerolog.Nop()
		return logPath
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if err != nil {
		log.Warn().Err(err).Msg("audit log file unavailable, logging to console only")
	}
	return logPath
}

// Command records an executed external command with its duration and outcome.
func Command(argv []string, dur time.Duration, err error) {
	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Strs("argv", argv).Dur("duration", dur).Msg("command")
}

// DryRun records a command that was printed instead of executed.
func DryRun(argv []string) {
	log.Info().Strs("argv", argv).Msg("dry-run command")
}

// Step records the outcome of one provisioning step.
func Step(name, status, note string) {
	ev := log.Info().Str("step", name).Str("status", status)
	if note != "" {
		ev = ev.Str("note", note)
	}
	ev.Msg("step")
}

func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
