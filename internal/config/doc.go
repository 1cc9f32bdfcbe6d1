// Package config loads, normalizes, and validates vorbify configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Command-line flags are layered on top of
// the loaded values by the CLI; this package only owns the file and the
// sanity rules.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, clamped quality values, and clear validation errors.
package config
