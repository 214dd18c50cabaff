package scene

import "fmt"

// InvalidConfigError reports an unknown quality tier or a malformed contract
// or scene configuration.
type InvalidConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid config %s: %v", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid config %s: %v (%s)", e.Field, e.Value, e.Reason)
}

// DuplicateCompositionError reports a second registration of an identifier.
type DuplicateCompositionError struct {
	ID string
}

func (e *DuplicateCompositionError) Error() string {
	return fmt.Sprintf("composition %q already registered", e.ID)
}

// UnknownCompositionError reports a lookup of an unregistered identifier.
type UnknownCompositionError struct {
	ID string
}

func (e *UnknownCompositionError) Error() string {
	return fmt.Sprintf("unknown composition %q", e.ID)
}
