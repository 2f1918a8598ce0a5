package ai

import "sync/atomic"

// debugLoggingEnabled gates behavior-engine debug output. Update runs for
// every living monster each tick, so the flag is checked instead of building
// slog arguments on that path.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging switches behavior-engine debug output on or off. Call
// it once at startup, before the tick loop starts.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether debug output is on. Guard any debug log
// whose arguments cost something to build:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("behavior committed", "monster", m.ID)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
