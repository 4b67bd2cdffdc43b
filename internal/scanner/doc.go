// Package scanner walks a directory tree of catalog manifests and populates
// a registry from it.
//
// The tree is a namespace: each .hcl file at a level is a loadable unit, each
// subdirectory is a nested namespace named parent.child. Every public class a
// unit declares (name not starting with "_") is bound to its compiled builder
// and registered under the scan's library and label tags, which propagate
// unchanged into nested namespaces.
//
// A scan holds no state between invocations. If loading any unit fails the
// scan stops and surfaces a ScanError naming the failing path; registrations
// made before the failure are kept.
package scanner
