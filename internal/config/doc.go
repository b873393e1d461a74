// Package config loads, normalizes, and validates airmail configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the AIRMAIL_SMTP_PASSWORD
// environment fallback. Always obtain settings through this package so
// downstream code receives sanitized paths and clear validation errors.
package config
