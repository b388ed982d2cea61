// SPDX-License-Identifier: MPL-2.0

package migration

import "os"

// Summary describes a package for display.
type Summary struct {
	BaseDir     string   `json:"base_dir" yaml:"base_dir"`
	HasInfo     bool     `json:"has_info" yaml:"has_info"`
	HasDatabase bool     `json:"has_database" yaml:"has_database"`
	HasLog      bool     `json:"has_log" yaml:"has_log"`
	Plugins     []string `json:"plugins" yaml:"plugins"`
	Stylesheet  string   `json:"stylesheet,omitempty" yaml:"stylesheet,omitempty"`
	Template    string   `json:"template,omitempty" yaml:"template,omitempty"`

	Validation *ValidationResult `json:"validation" yaml:"validation"`
}

// Summarize gathers metadata and validation results. Metadata that cannot
// be read is left empty; the reason appears among the validation warnings.
func (p *Package) Summarize() (*Summary, error) {
	result, err := p.Validate()
	if err != nil {
		return nil, err
	}

	s := &Summary{
		BaseDir:     p.BaseDir,
		HasInfo:     isRegular(p.InfoFile()),
		HasDatabase: isRegular(p.DatabaseFile()),
		HasLog:      isRegular(p.LogFile()),
		Plugins:     []string{},
		Validation:  result,
	}
	if !s.HasInfo {
		return s, nil
	}

	if d, err := p.Details(); err == nil {
		s.Stylesheet = d.Stylesheet
		s.Template = d.Template
	}
	if plugins, err := p.Plugins(); err == nil {
		s.Plugins = plugins
	}
	return s, nil
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
