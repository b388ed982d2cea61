// SPDX-License-Identifier: MPL-2.0

// Package config loads ai1wm settings using Viper with CUE as the file format.
//
// The file is read from ai1wm/config.cue under the platform configuration
// directory ($XDG_CONFIG_HOME or ~/.config on Linux, ~/Library/Application
// Support on macOS, %APPDATA% on Windows), from .ai1wm.cue in the working
// directory, or from an explicit path. It is validated against the embedded
// config_schema.cue before being merged over the defaults. Environment
// variables prefixed with AI1WM_ override file values, for example
// AI1WM_ARCHIVE_CHUNK_SIZE.
package config
