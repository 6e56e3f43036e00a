package metadata

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	nopLogger     = zap.NewNop()
	packageLogger atomic.Pointer[zap.Logger]
)

// Logger returns the logger used by decodes without Config.Logger.
// It is a no-op logger until SetLogger installs one.
func Logger() *zap.Logger {
	if l := packageLogger.Load(); l != nil {
		return l
	}
	return nopLogger
}

// SetLogger installs the package logger. Passing nil restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	packageLogger.Store(l)
}
