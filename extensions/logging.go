// Package extensions provides optional hooks and helpers layered on the
// core tree: structured evaluation logging and tree rendering.
package extensions

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// LoggingHook logs every leaf evaluation. Register it on a node with
// Node.Use; cached hits are not logged because they never reach the
// leaf body.
type LoggingHook struct {
	logger *log.Logger
}

// NewLoggingHook creates a hook writing to w at debug level.
func NewLoggingHook(w io.Writer) *LoggingHook {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "respread",
	})
	logger.SetLevel(log.DebugLevel)
	return &LoggingHook{logger: logger}
}

// NewLoggingHookWithLogger wraps an existing logger.
func NewLoggingHookWithLogger(logger *log.Logger) *LoggingHook {
	return &LoggingHook{logger: logger}
}

func (h *LoggingHook) BeforeCall(path string, key any) {
	h.logger.Debug("evaluating", "path", path, "key", key)
}

func (h *LoggingHook) AfterCall(path string, key any, value any, err error, elapsed time.Duration) {
	if err != nil {
		h.logger.Error("evaluation failed", "path", path, "key", key, "elapsed", elapsed, "err", err)
		return
	}
	h.logger.Debug("evaluated", "path", path, "key", key, "value", value, "elapsed", elapsed)
}
