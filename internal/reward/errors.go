package reward

import "errors"

// ConfigurationError signals a server-side misconfiguration, such as a case
// without any seeded items. It is never a user-facing validation error.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "reward configuration error: " + e.Reason
}

// Is reports whether target is a ConfigurationError with the same reason.
func (e *ConfigurationError) Is(target error) bool {
	var ce *ConfigurationError
	return errors.As(target, &ce) && ce.Reason == e.Reason
}

// ErrEmptyPool is returned when there is nothing to select from.
var ErrEmptyPool error = &ConfigurationError{Reason: ErrMsgEmptyPool}
