// Package netinventory: Debug logging support.
package netinventory

import "sync"

// DebugLevel represents the verbosity level for debug logging.
type DebugLevel int

const (
	// DebugOff disables all debug logging.
	DebugOff DebugLevel = iota
	// DebugBasic logs high-level scan stages.
	DebugBasic
	// DebugVerbose logs per-host detail.
	DebugVerbose
)

// DebugLogger is a callback for debug logging. The component parameter
// names the scan stage that produced the message.
type DebugLogger func(component string, format string, args ...interface{})

var (
	debugLogger DebugLogger
	debugLevel  DebugLevel
	debugMu     sync.RWMutex
)

// SetDebugLogger sets a custom debug logger callback.
// Pass nil to disable debug logging.
func SetDebugLogger(logger DebugLogger) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugLogger = logger
}

// SetDebugLevel sets the debug verbosity level.
func SetDebugLevel(level DebugLevel) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugLevel = level
}

func debugLog(component, format string, args ...interface{}) {
	debugMu.RLock()
	logger := debugLogger
	level := debugLevel
	debugMu.RUnlock()

	if logger != nil && level >= DebugBasic {
		logger(component, format, args...)
	}
}

func debugLogVerbose(component, format string, args ...interface{}) {
	debugMu.RLock()
	logger := debugLogger
	level := debugLevel
	debugMu.RUnlock()

	if logger != nil && level >= DebugVerbose {
		logger(component, format, args...)
	}
}
