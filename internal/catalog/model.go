// Package catalog defines the format-agnostic model of a catalog manifest:
// the constructible classes a unit declares and the inputs each class
// accepts. Format-specific loaders (see internal/hclcat) translate manifest
// files into this model.
package catalog

import "github.com/zclconf/go-cty/cty"

// Unit is one loadable manifest file.
type Unit struct {
	// Path is the file the unit was loaded from, kept for error reporting.
	Path string

	// Classes are the constructible types the unit declares, in file order.
	Classes []*ClassDefinition
}

// ClassDefinition describes one constructible type: the name it is registered
// under and the Go builder that produces instances of it.
type ClassDefinition struct {
	Name        string
	Description string

	// Builder names the compiled builder function bound at scan time.
	Builder string

	// Inputs declares the named constructor arguments, keyed by name.
	Inputs map[string]*InputDefinition
}

// InputDefinition declares a single named constructor argument.
type InputDefinition struct {
	Name        string
	Description string

	// Type constrains supplied values. cty.DynamicPseudoType disables the
	// constraint.
	Type cty.Type

	// Default fills the argument when the caller omits it. An input with a
	// default is implicitly optional.
	Default  *cty.Value
	Optional bool
}
