// Package log provides module-tagged leveled loggers. Verbosity comes from
// the config file's log_level and the CLI's -v/-vv switches.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

type Level logging.Level

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// levels maps each Level and its config names onto the backend level.
var levels = []struct {
	level   Level
	backend logging.Level
	names   []string
}{
	{Debug, logging.DEBUG, []string{"debug"}},
	{Info, logging.INFO, []string{"info"}},
	{Notice, logging.NOTICE, []string{"notice", ""}},
	{Warning, logging.WARNING, []string{"warning", "warn"}},
	{Error, logging.ERROR, []string{"error"}},
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	leveledBackend logging.LeveledBackend
	current        = Notice
)

// Logger is the leveled logger used by every package of the module.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a logger tagged with the given module name.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all loggers to sink, keeping the current level.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	leveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	logging.SetBackend(leveledBackend)
	SetLevel(current)
}

// SetLevel sets the verbosity of all loggers.
func SetLevel(level Level) {
	for _, l := range levels {
		if l.level == level {
			current = level
			leveledBackend.SetLevel(l.backend, "")
			return
		}
	}
}

// CurrentLevel returns the active verbosity.
func CurrentLevel() Level {
	return current
}

// ParseLevel maps a config name onto a Level. The empty name is Notice.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, l := range levels {
		for _, n := range l.names {
			if n == name {
				return l.level, nil
			}
		}
	}
	return Notice, fmt.Errorf("unknown log level %q", name)
}

// SetLevelName parses name and applies it. An unknown name leaves the level
// unchanged.
func SetLevelName(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	SetLevel(level)
	return nil
}

func init() {
	SetSink(os.Stdout)
}
