package flappy

import "fmt"

// ConfigurationError is returned when a game or track cannot be built from
// the given configuration. It is fatal to construction.
type ConfigurationError struct {
	Field  string // Offending config field, e.g. "track.min_height"
	Reason string
	Err    error // Underlying validation error, if any
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flappy: invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("flappy: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
