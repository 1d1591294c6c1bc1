// Package config provides keyview's configuration.
//
// Settings are layered from lowest to highest precedence:
//
//  1. Built-in defaults (Default)
//  2. A config file, TOML or YAML by extension
//  3. KEYVIEW_* environment variables
//  4. Command-line overrides
//
// Each layer is read into a nested map by the loader package; the maps
// are merged and applied to a typed Config, which is then validated.
//
// # Example
//
//	[viewer]
//	banner = "keyview -- version {version}"
//	filler = "~"
//	poll_interval = "500ms"
//
//	[logging]
//	level = "info"
//	file = "/tmp/keyview.log"
package config
