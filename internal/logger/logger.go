package logger

import "fmt"

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// New returns a console logger for the given level. The application builds
// one logger at start-up and passes it down explicitly.
func New(level string) (*Logger, error) {
	if err := ValidateLevel(level); err != nil {
		return nil, err
	}
	return newZapLogger(level), nil
}

// ValidateLevel rejects level strings the logger does not understand.
func ValidateLevel(level string) error {
	switch level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return nil
	default:
		return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}
}
