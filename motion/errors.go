package motion

import "fmt"

// InvalidRangeError reports a malformed interpolation definition.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid interpolation range: %s", e.Reason)
}

func invalidRangef(format string, args ...any) error {
	return &InvalidRangeError{Reason: fmt.Sprintf(format, args...)}
}

// InvalidParameterError reports a malformed spring or easing parameter.
type InvalidParameterError struct {
	Param string
	Value any
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %v", e.Param, e.Value)
}
