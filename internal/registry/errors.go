package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the lookup taxonomy. The typed errors below wrap these,
// so callers can branch with errors.Is without losing the lookup context the
// typed forms carry.
var (
	ErrUnknownKey     = errors.New("unknown key")
	ErrUnknownLibrary = errors.New("unknown library")
	ErrUnknownLabel   = errors.New("unknown label")
	ErrAmbiguousEntry = errors.New("ambiguous entry")
)

var (
	_ error = (*UnknownKeyError)(nil)
	_ error = (*UnknownLibraryError)(nil)
	_ error = (*UnknownLabelError)(nil)
	_ error = (*AmbiguousEntryError)(nil)
)

// UnknownKeyError reports that no entry matches the requested key.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("no entry registered under key %q", e.Key)
}

func (e *UnknownKeyError) Unwrap() error { return ErrUnknownKey }

// UnknownLibraryError reports that entries match the key but none match the
// requested library.
type UnknownLibraryError struct {
	Key     string
	Library string
}

func (e *UnknownLibraryError) Error() string {
	return fmt.Sprintf("key %q has no entry in library %q", e.Key, e.Library)
}

func (e *UnknownLibraryError) Unwrap() error { return ErrUnknownLibrary }

// UnknownLabelError reports that entries match the key (and library, if one
// was given) but none match the requested label.
type UnknownLabelError struct {
	Key     string
	Library string // empty when the lookup did not filter by library
	Label   string
}

func (e *UnknownLabelError) Error() string {
	if e.Library != "" {
		return fmt.Sprintf("key %q in library %q has no entry with label %q", e.Key, e.Library, e.Label)
	}
	return fmt.Sprintf("key %q has no entry with label %q", e.Key, e.Label)
}

func (e *UnknownLabelError) Unwrap() error { return ErrUnknownLabel }

// AmbiguousEntryError reports that more than one entry survived every applied
// filter. Its message names the surviving count and the filters used, so the
// caller knows which dimension to add.
type AmbiguousEntryError struct {
	Key     string
	Library string // empty when the lookup did not filter by library
	Label   string // empty when the lookup did not filter by label
	Count   int
}

func (e *AmbiguousEntryError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d entries match key %q", e.Count, e.Key)
	if e.Library != "" {
		fmt.Fprintf(&b, ", library %q", e.Library)
	}
	if e.Label != "" {
		fmt.Fprintf(&b, ", label %q", e.Label)
	}
	b.WriteString("; add a library or label to disambiguate")
	return b.String()
}

func (e *AmbiguousEntryError) Unwrap() error { return ErrAmbiguousEntry }
