// Package registry implements the central store of constructible types.
//
// Each registration is an Entry: a case-insensitive key naming a type, the
// constructor that produces instances of it, and two further case-insensitive
// dimensions used for disambiguation: a library (where the type came from)
// and a label (a free-form variant tag). Lookups filter progressively by key,
// then library, then label, so the resulting errors name the exact dimension
// that eliminated every candidate or left more than one standing.
//
// The registry grows only. Registering a tuple that is already present is a
// no-op, so repeated scans of the same catalog tree are harmless.
package registry
