package deepseekchat

import "fmt"

// ConfigError reports an unusable configuration, such as a missing
// credential. Configuration errors are fatal and occur before any
// conversation starts.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Field, e.Message)
}
