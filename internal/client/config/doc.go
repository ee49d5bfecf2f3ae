// Package config loads the CLI's runtime settings from layered sources:
// built-in defaults, the process environment (with optional .env file),
// an optional JSON file, and command-line flags, in that order of
// precedence.
package config
