// Package cli turns command-line arguments and environment bootstrap into a
// validated app.Config.
package cli
