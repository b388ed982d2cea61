// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

const (
	FormatCUE  Format = "cue"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrInvalidFormat is returned by Generate for an unknown Format.
var ErrInvalidFormat = errors.New("invalid output format")

// Format is a serialization for `config dump`.
type Format string

// Generate renders cfg in the given format.
func Generate(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatCUE:
		return []byte(GenerateCUE(cfg)), nil
	case FormatTOML:
		return GenerateTOML(cfg)
	case FormatYAML:
		return GenerateYAML(cfg)
	default:
		return nil, fmt.Errorf("%w %q (valid: cue, toml, yaml)", ErrInvalidFormat, string(format))
	}
}

// GenerateCUE renders cfg as a config.cue file accepted by the schema.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// ai1wm configuration\n\n")

	sb.WriteString("ui: {\n")
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n\n")

	sb.WriteString("archive: {\n")
	fmt.Fprintf(&sb, "\tchunk_size:     %d\n", cfg.Archive.ChunkSize)
	fmt.Fprintf(&sb, "\tpreserve_times: %v\n", cfg.Archive.PreserveTimes)
	sb.WriteString("}\n\n")

	sb.WriteString("migration: {\n")
	fmt.Fprintf(&sb, "\tvalidate: %v\n", cfg.Migration.Validate)
	sb.WriteString("}\n\n")

	sb.WriteString("log: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders cfg as TOML.
func GenerateTOML(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return out, nil
}

// GenerateYAML renders cfg as YAML.
func GenerateYAML(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config as YAML: %w", err)
	}
	return out, nil
}
