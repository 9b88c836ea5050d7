// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/routec/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/routec/config.cue on macOS, %APPDATA%\routec\config.cue
// on Windows), falling back to ./config.cue and then to built-in defaults. It covers the
// default route file, compiler output options, the summary display settings and UI
// preferences. ROUTEC_* environment variables override file values (for example
// ROUTEC_DISPLAY_STYLE=tree).
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
