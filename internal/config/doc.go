// Package config loads, normalizes, and validates ttsprep configuration data.
//
// It supplies repository defaults (including the stock corpus list), expands
// user paths with tilde shortcuts, and reads TOML files. The Config type
// centralizes every knob the pipeline and CLI need: the work directory that
// holds the global split files, the corpora to merge, audio conversion
// settings, history, and logging.
//
// Always obtain settings through this package so downstream code receives
// absolute work directories, canonical log formats, and clear validation
// errors.
package config
