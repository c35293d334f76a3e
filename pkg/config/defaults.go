package config

import "runtime"

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = LogFormatText
)

// DefaultConcurrency is the number of sources linted at once.
var DefaultConcurrency = runtime.GOMAXPROCS(0)

// defaults returns the lowest-precedence configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"log_level":   DefaultLogLevel,
		"log_format":  DefaultLogFormat,
		"concurrency": DefaultConcurrency,
	}
}
