// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions selects where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath forces loading from this file when set.
	ConfigFilePath string
	// ConfigDirPath replaces ConfigDir when set.
	ConfigDirPath string
}

// Provider loads configuration.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider returns a Provider backed by config files and the environment.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
