// Package config loads, normalizes, and validates niriscale configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads the TOML file at ~/.config/niriscale/config.toml, and
// keeps the compositor socket resolution order stable: flag, config file,
// then the NIRI_SOCKET environment variable.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical direction/level spellings, and clear
// validation errors.
package config
