// Package config loads and persists the classwatch YAML configuration.
// A missing file is replaced with written defaults; partial files are
// normalized so zero values never leak into the service.
package config
