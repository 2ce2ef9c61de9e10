// Package config loads, normalizes, and validates conform's TOML
// configuration.
//
// Load resolves the config path (flag value or ~/.config/conform/config.toml),
// layers the file over repository defaults, expands tilde paths, and rejects
// unusable values before any component sees them. A sample configuration is
// embedded for `conform config init`.
//
// Components receive a *Config and must not re-read the file; the struct is
// immutable after Load returns.
package config
