// Package config loads, normalizes, and validates clipscribe configuration.
//
// Values come from three layers, lowest precedence first: built-in defaults,
// a TOML config file, and CLIPSCRIBE_-prefixed environment variables. Path
// fields are expanded (~) and made absolute during normalization so the rest
// of the system never deals with relative paths.
package config
