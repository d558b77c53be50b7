// Package iobootstrap creates reference data of a migration: the
// jurisdiction, element, feature and fixture lookup types, and seed
// code maps. This is an impure I/O package that implements
// lifecycle.Bootstrapper.
package iobootstrap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/db"
	"github.com/ptnexus/apdb/pkg/lifecycle"
	"github.com/ptnexus/apdb/pkg/schema"
	"gorm.io/gorm"
)

// lookupBatchSize limits rows per INSERT of lookup types.
const lookupBatchSize = 500

type bootstrapper struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a Bootstrapper for the jurisdiction described in
// cfg.Migrate.Jurisdiction.
func New(cfg *config.Config, op db.Operator) lifecycle.Bootstrapper {
	return &bootstrapper{cfg: cfg, operator: op}
}

// Bootstrap creates all reference data in one transaction. Nothing is
// kept if any step fails. A second run against the same database fails
// on unique constraints of jurisdictions.
func (b *bootstrapper) Bootstrap(ctx context.Context) (*lifecycle.Reference, error) {
	gormDB, err := b.gorm(ctx)
	if err != nil {
		return nil, err
	}

	seeds, err := seedCodeMaps()
	if err != nil {
		return nil, SeedError(err)
	}

	res := &lifecycle.Reference{Counts: lifecycle.Counts{}}
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		j := b.jurisdiction()
		if err := tx.Create(&j).Error; err != nil {
			return JurisdictionError(b.cfg.Migrate.Jurisdiction.FIPSCode, err)
		}
		res.JurisdictionID = j.ID
		res.Counts[lifecycle.CountJurisdictions] = 1

		if res.ElementTypes, err = createElementTypes(tx, j.ID); err != nil {
			return LookupTypesError(schema.LegacyStructuralElementTable, err)
		}
		res.Counts[lifecycle.CountElementTypes] = len(res.ElementTypes)

		if res.FeatureTypes, err = createFeatureTypes(tx, j.ID); err != nil {
			return LookupTypesError(schema.LegacyExtraFeatureTable, err)
		}
		res.Counts[lifecycle.CountFeatureTypes] = len(res.FeatureTypes)

		if res.FixtureTypes, err = createFixtureTypes(tx, j.ID); err != nil {
			return LookupTypesError(schema.LegacyFixtureTable, err)
		}
		res.Counts[lifecycle.CountFixtureTypes] = len(res.FixtureTypes)

		codeMaps := buildCodeMaps(j.ID, seeds)
		if len(codeMaps) > 0 {
			if err := tx.CreateInBatches(&codeMaps, lookupBatchSize).Error; err != nil {
				return CodeMapsError(err)
			}
		}
		res.Counts[lifecycle.CountCodeMaps] = len(codeMaps)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Reference data created",
		"jurisdiction", res.JurisdictionID,
		"element_types", len(res.ElementTypes),
		"feature_types", len(res.FeatureTypes),
		"fixture_types", len(res.FixtureTypes),
		"code_maps", res.Counts[lifecycle.CountCodeMaps],
	)
	return res, nil
}

// Existing loads reference data of the jurisdiction with the configured
// FIPS code.
func (b *bootstrapper) Existing(ctx context.Context) (*lifecycle.Reference, error) {
	gormDB, err := b.gorm(ctx)
	if err != nil {
		return nil, err
	}

	fips := b.cfg.Migrate.Jurisdiction.FIPSCode
	var j schema.Jurisdiction
	err = gormDB.Where("fips_code = ?", fips).First(&j).Error
	if err != nil {
		return nil, NotFoundError(fips, err)
	}

	res := &lifecycle.Reference{
		JurisdictionID: j.ID,
		Counts:         lifecycle.Counts{},
	}

	var elements []schema.ElementType
	if err = gormDB.Where("jurisdiction_id = ?", j.ID).Find(&elements).Error; err != nil {
		return nil, LookupTypesError(schema.LegacyStructuralElementTable, err)
	}
	res.ElementTypes = make(map[string]uuid.UUID, len(elements))
	for _, v := range elements {
		res.ElementTypes[v.Code] = v.ID
	}

	var features []schema.FeatureType
	if err = gormDB.Where("jurisdiction_id = ?", j.ID).Find(&features).Error; err != nil {
		return nil, LookupTypesError(schema.LegacyExtraFeatureTable, err)
	}
	res.FeatureTypes = make(map[string]uuid.UUID, len(features))
	for _, v := range features {
		res.FeatureTypes[v.Code] = v.ID
	}

	var fixtures []schema.FixtureType
	if err = gormDB.Where("jurisdiction_id = ?", j.ID).Find(&fixtures).Error; err != nil {
		return nil, LookupTypesError(schema.LegacyFixtureTable, err)
	}
	res.FixtureTypes = make(map[string]uuid.UUID, len(fixtures))
	for _, v := range fixtures {
		res.FixtureTypes[v.Code] = v.ID
	}

	slog.Info("Reusing reference data",
		"jurisdiction", j.ID,
		"fips_code", fips,
		"element_types", len(elements),
		"feature_types", len(features),
		"fixture_types", len(fixtures),
	)
	return res, nil
}

func (b *bootstrapper) jurisdiction() schema.Jurisdiction {
	jc := b.cfg.Migrate.Jurisdiction
	return schema.Jurisdiction{
		State:        jc.State,
		CountyName:   jc.CountyName,
		FIPSCode:     optional(jc.FIPSCode),
		FullName:     jc.FullName,
		ShortName:    jc.ShortName,
		SourceSystem: optional(jc.SourceSystem),
		DataFormat:   optional(jc.DataFormat),
		IsActive:     true,
	}
}

func (b *bootstrapper) gorm(ctx context.Context) (*gorm.DB, error) {
	gormDB, err := b.operator.GORM()
	if err != nil {
		return nil, NotConnectedError(err)
	}
	if gormDB == nil {
		return nil, NotConnectedError(errors.New("no database handle"))
	}
	return gormDB.WithContext(ctx), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
