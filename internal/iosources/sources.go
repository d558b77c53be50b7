// Package iosources reads sources.yaml, the list of legacy export files.
// This is an impure I/O package that implements sources.Sources.
package iosources

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/sources"
	"gopkg.in/yaml.v3"
)

type iosources struct {
	cfg *config.Config
}

// New creates sources.Sources that reads sources.yaml from the
// configuration directory.
func New(cfg *config.Config) sources.Sources {
	return &iosources{cfg: cfg}
}

// Load reads, validates and path-expands sources.yaml.
func (s *iosources) Load() (*sources.SourcesConfig, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)
	sourcesConfig, err := loadSourcesConfig(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}

	if err = sourcesConfig.Validate(); err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	for _, w := range sourcesConfig.Warnings {
		slog.Warn("Sources configuration",
			"index", w.Index, "field", w.Field,
			"message", w.Message, "suggestion", w.Suggestion)
	}

	for i := range sourcesConfig.LegacyFiles {
		f := &sourcesConfig.LegacyFiles[i]
		f.Path = sources.ExpandPath(f.Path, s.cfg.HomeDir)
	}

	return sourcesConfig, nil
}

func loadSourcesConfig(path string) (*sources.SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources config file: %w", err)
	}

	var res sources.SourcesConfig
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to parse sources config file: %w", err)
	}
	return &res, nil
}
