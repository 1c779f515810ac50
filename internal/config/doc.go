// Package config loads, normalizes, and validates wordrank configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// WORDRANK_DATA_DIR. The Config type centralizes every knob the CLI needs:
// tokenizer punctuation and case folding, report range defaults, the run
// archive location, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
