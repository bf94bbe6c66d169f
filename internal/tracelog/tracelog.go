// Package tracelog provides the shared debug/trace logger used by the
// compiler and virtual machine. It stays silent at the default level and
// only emits once a caller opts in via SetTraceEnabled, the way the rest of
// the Lox toolchain's debug output is feature-gated rather than always-on.
package tracelog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Compiler and VM packages call Log.Debugln /
// Log.Debugf to emit trace lines; these are dropped unless trace mode is
// enabled.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetTraceEnabled raises or lowers Log's level between Debug (full
// instruction/parse trace) and Info (silent unless something goes wrong).
func SetTraceEnabled(enabled bool) {
	if enabled {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}
