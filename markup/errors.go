package markup

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolved is matched by every ResolveError.
	ErrUnresolved = errors.New("markup: unresolved name")
	// ErrNoResolver is reported when a directive needs a lookup but no Resolver was given.
	ErrNoResolver = errors.New("markup: no resolver")
)

// ResolveError reports a directive whose value could not be resolved.
type ResolveError struct {
	Key    string // directive key, eg. "font"
	Name   string // the value that failed
	Offset int    // byte offset of the directive in the raw text
	Err    error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("markup: %s %q at offset %d: %v", e.Key, e.Name, e.Offset, e.Err)
}

// Unwrap exposes both ErrUnresolved and the resolver's own error.
func (e *ResolveError) Unwrap() []error {
	return []error{ErrUnresolved, e.Err}
}
