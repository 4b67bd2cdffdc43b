// Package cli parses command-line arguments into an app configuration and an
// optional create request.
package cli
