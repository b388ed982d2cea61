// SPDX-License-Identifier: MPL-2.0

package migration

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"ai1wm-cli/pkg/cueutil"
)

//go:embed package_schema.cue
var packageSchema []byte

var (
	// ErrInfoUnreadable is returned when package.json cannot be read or does
	// not match the expected shape.
	ErrInfoUnreadable = errors.New("error reading package information file")

	// ErrNoPlugins is returned by Plugins when package.json has no plugin list.
	ErrNoPlugins = errors.New("error retrieving plugin list from package information")
)

// Details is the decoded content of package.json.
type Details struct {
	// Plugins lists active plugins as "<dir>/<main file>" entries.
	Plugins []string `json:"Plugins,omitempty"`
	// Stylesheet is the active child theme.
	Stylesheet string `json:"Stylesheet,omitempty"`
	// Template is the active parent theme.
	Template string `json:"Template,omitempty"`

	// Raw holds every key of the document, including ones not declared above.
	Raw map[string]any `json:"-"`
}

// Details reads and decodes package.json.
func (p *Package) Details() (*Details, error) {
	if p.details != nil {
		return p.details, nil
	}

	path := p.InfoFile()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInfoUnreadable, path, err)
	}

	result, err := cueutil.ParseAndDecode[Details](packageSchema, data, "#Package",
		cueutil.WithJSON(),
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInfoUnreadable, err)
	}
	d := result.Value
	if err := result.Unified.Decode(&d.Raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInfoUnreadable, path, err)
	}

	p.details = d
	return d, nil
}

// Plugins returns the directory name of every active plugin, the part of
// each Plugins entry before the first '/'.
func (p *Package) Plugins() ([]string, error) {
	if p.plugins != nil {
		return p.plugins, nil
	}
	d, err := p.Details()
	if err != nil {
		return nil, err
	}
	if _, ok := d.Raw["Plugins"]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPlugins, p.InfoFile())
	}

	plugins := make([]string, 0, len(d.Plugins))
	for _, entry := range d.Plugins {
		dir, _, _ := strings.Cut(entry, "/")
		plugins = append(plugins, dir)
	}
	p.plugins = plugins
	return plugins, nil
}

// Stylesheet returns the active stylesheet, or "" if none is recorded.
func (p *Package) Stylesheet() (string, error) {
	d, err := p.Details()
	if err != nil {
		return "", err
	}
	return d.Stylesheet, nil
}

// Template returns the active template, or "" if none is recorded.
func (p *Package) Template() (string, error) {
	d, err := p.Details()
	if err != nil {
		return "", err
	}
	return d.Template, nil
}
