// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the startup sequence (register builders,
// scan the catalog, expose the populated registry) decoupled from any
// specific entrypoint like a CLI.
package app
