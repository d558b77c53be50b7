package iobootstrap

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ptnexus/apdb/pkg/schema"
	"github.com/ptnexus/apdb/pkg/templates"
	"gopkg.in/yaml.v3"
)

const (
	seedConfidence = "high"
	seedSource     = "bootstrap"
)

type seedFile struct {
	CodeMaps []seedGroup `yaml:"code_maps"`
}

type seedGroup struct {
	CodeType string     `yaml:"code_type"`
	Codes    []seedCode `yaml:"codes"`
}

type seedCode struct {
	Source      string `yaml:"source"`
	Std         string `yaml:"std"`
	Description string `yaml:"description"`
}

// seedCodeMaps parses the embedded standard code mappings.
func seedCodeMaps() ([]seedGroup, error) {
	var res seedFile
	if err := yaml.Unmarshal([]byte(templates.CodeMapsYAML), &res); err != nil {
		return nil, err
	}
	for _, g := range res.CodeMaps {
		if g.CodeType == "" {
			return nil, fmt.Errorf("code map group without code_type")
		}
		for _, c := range g.Codes {
			if c.Source == "" || c.Std == "" {
				return nil, fmt.Errorf("incomplete %s code map %+v", g.CodeType, c)
			}
		}
	}
	return res.CodeMaps, nil
}

func buildCodeMaps(jID uuid.UUID, groups []seedGroup) []schema.CodeMap {
	var res []schema.CodeMap
	for _, g := range groups {
		for _, c := range g.Codes {
			desc := c.Description
			if desc == "" {
				desc = c.Std
			}
			res = append(res, schema.CodeMap{
				JurisdictionID:    jID,
				CodeType:          g.CodeType,
				SourceCode:        c.Source,
				StdCode:           c.Std,
				StdDescription:    desc,
				ConfidenceLevel:   optional(seedConfidence),
				IsActive:          true,
				Version:           1,
				CreatedFromSource: optional(seedSource),
			})
		}
	}
	return res
}
