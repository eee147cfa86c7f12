// Package config loads, normalizes, and validates culler configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CULLER_SMTP_PASSWORD. The Config type centralizes every knob the daemon and
// CLI need, so scan roots, report directories, and notification credentials
// are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical digest algorithm names, and clear validation
// errors.
package config
