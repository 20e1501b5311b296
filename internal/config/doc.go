// Package config loads the analyzer's YAML configuration.
//
// Values may reference environment variables as ${VAR}; they are expanded
// before parsing. A .env file, when present, is loaded into the environment
// first so credentials and paths can live outside the YAML file.
//
// Command-line flags are applied by the caller after loading and take
// precedence over file values.
package config
