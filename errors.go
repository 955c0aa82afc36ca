// File: settei/errors.go
package settei

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrConfigNotFound is returned when a configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// KeyError reports a dotted key path that was absent from the document,
// absent from the environment (when enabled), and had no declared default.
type KeyError struct {
	Key string
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("configuration key not found: %s", e.Key)
}

// ValueError reports a resolved value that is structurally wrong for its
// intended use: not a mapping where one is required, a missing "class"
// field, a malformed import path, an uncallable symbol, an invalid "*"
// argument list, or a parser failure.
type ValueError struct {
	Key    string
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Key, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause for errors.Is and errors.As.
func (e *ValueError) Unwrap() error {
	return e.Cause
}

// TypeError reports a resolved value that does not match the declared type
// of its property, including enum coercion failures.
type TypeError struct {
	Key      string
	Expected string
	Value    any
	Reason   string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("%s configuration must be %s, not %#v", e.Key, e.Expected, e.Value)
}

// Warning describes a non-fatal advisory emitted when a property falls back
// to its declared default and was declared with WithDefaultWarning.
type Warning struct {
	Key     string
	Default any
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return fmt.Sprintf("can't find %s configuration; use %v", w.Key, w.Default)
}

// WarningFunc receives default-usage advisories. It must not abort
// resolution; the property read continues regardless of what it does.
type WarningFunc func(w Warning)

// defaultWarningFunc logs advisories through the process-global zap logger.
func defaultWarningFunc(w Warning) {
	zap.L().Warn("using default configuration value",
		zap.String("key", w.Key),
		zap.Any("default", w.Default),
	)
}
