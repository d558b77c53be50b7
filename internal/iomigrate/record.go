package iomigrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ptnexus/apdb/internal/iocodemap"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/lifecycle"
	"github.com/ptnexus/apdb/pkg/schema"
	"gorm.io/gorm"
)

// buildingClassType is the code type of building classes in code_maps.
const buildingClassType = "building_class"

// run keeps state shared by all records of one migration.
type run struct {
	cfg *config.Config
	ref *lifecycle.Reference

	// classes caches resolved building classes for the run.
	classes map[string]string
}

func newRun(cfg *config.Config, ref *lifecycle.Reference) *run {
	return &run{
		cfg:     cfg,
		ref:     ref,
		classes: make(map[string]string),
	}
}

// record migrates one legacy property inside its own savepoint and adds
// the result to counts. A failed record leaves nothing behind.
func (r *run) record(
	ctx context.Context,
	tx *gorm.DB,
	p *schema.LegacyProperty,
	counts lifecycle.Counts,
) {
	rc := lifecycle.Counts{}
	err := tx.Transaction(func(stx *gorm.DB) error {
		return r.migrateRecord(ctx, stx, p, rc)
	})
	if err == nil {
		counts.Add(rc)
		return
	}

	counts[lifecycle.CountFailedRecords]++
	if isDuplicate(err) {
		counts[lifecycle.CountDuplicates]++
		slog.Warn("Record already migrated", "acct", p.Acct)
		return
	}
	slog.Error("Cannot migrate record", "acct", p.Acct, "error", err)
}

func (r *run) migrateRecord(
	ctx context.Context,
	tx *gorm.DB,
	p *schema.LegacyProperty,
	counts lifecycle.Counts,
) error {
	var situsID *uuid.UUID
	if addr := buildAddress(p, r.cfg.Migrate.Jurisdiction); addr != nil {
		if err := tx.Create(addr).Error; err != nil {
			return recordError(p.Acct, "address", err)
		}
		situsID = &addr.ID
		counts[lifecycle.CountAddresses]++
	}

	prop := buildProperty(p, r.ref.JurisdictionID, situsID)
	if err := tx.Create(prop).Error; err != nil {
		return recordError(p.Acct, "property", err)
	}
	counts[lifecycle.CountProperties]++

	vals := []*schema.Valuation{buildValuation(p, prop.ID, r.cfg.Migrate)}
	if r.cfg.Migrate.WithPriorYear {
		if prior := buildPriorValuation(p, prop.ID, r.cfg.Migrate); prior != nil {
			vals = append(vals, prior)
		}
	}
	for _, v := range vals {
		if err := tx.Create(v).Error; err != nil {
			return recordError(p.Acct, "valuation", err)
		}
		counts[lifecycle.CountValuations]++
	}

	return r.structures(ctx, tx, p, prop.ID, counts)
}

// structures creates structures of one property with their elements,
// features and fixtures, and property-level extra features.
func (r *run) structures(
	ctx context.Context,
	tx *gorm.DB,
	p *schema.LegacyProperty,
	propertyID uuid.UUID,
	counts lifecycle.Counts,
) error {
	var elems []schema.LegacyStructuralElement
	if err := tx.Where("acct = ?", p.Acct).Order("id").Find(&elems).Error; err != nil {
		return recordError(p.Acct, "structural elements", err)
	}
	var features []schema.LegacyExtraFeature
	if err := tx.Where("acct = ?", p.Acct).Order("id").Find(&features).Error; err != nil {
		return recordError(p.Acct, "extra features", err)
	}
	var fixtures []schema.LegacyFixture
	if err := tx.Where("acct = ?", p.Acct).Order("id").Find(&fixtures).Error; err != nil {
		return recordError(p.Acct, "fixtures", err)
	}

	ids := make([]string, len(elems))
	for i := range elems {
		ids[i] = elems[i].BldNum.String
	}
	blds, bumped := buildings(ids)
	for _, v := range bumped {
		slog.Warn("Structure sequence is taken, using next free one",
			"acct", p.Acct, "bld_num", v.id, "sequence", v.seq)
	}

	structureIDs := make(map[string]uuid.UUID, len(blds))
	for _, b := range blds {
		s := &schema.Structure{
			PropertyID:        propertyID,
			StructureSequence: b.seq,
			IsPrimary:         isPrimary(b.id),
			IsActive:          true,
			SourceBuildingID:  optional(b.id),
		}
		if s.IsPrimary {
			class, err := r.buildingClass(ctx, tx, p.EconBldClass.String)
			if err != nil {
				return err
			}
			s.BuildingClass = class
		}
		if err := tx.Create(s).Error; err != nil {
			return recordError(p.Acct, "structure", err)
		}
		structureIDs[b.id] = s.ID
		counts[lifecycle.CountStructures]++
	}

	for i := range elems {
		row := &elems[i]
		sID, ok := structureIDs[strings.TrimSpace(row.BldNum.String)]
		if !ok {
			// blank building id, nothing to attach to
			counts[lifecycle.CountDroppedElements]++
			continue
		}
		typeID, ok := r.ref.ElementTypes[strings.TrimSpace(row.Code.String)]
		if !ok {
			slog.Debug("Unresolved element code",
				"acct", p.Acct, "code", row.Code.String)
			counts[lifecycle.CountDroppedElements]++
			continue
		}
		if err := tx.Create(buildElement(row, sID, typeID)).Error; err != nil {
			return recordError(p.Acct, "structure element", err)
		}
		counts[lifecycle.CountStructureElements]++
	}

	for i := range features {
		row := &features[i]
		typeID, ok := r.ref.FeatureTypes[strings.TrimSpace(row.Cd.String)]
		if !ok {
			slog.Debug("Unresolved extra feature code",
				"acct", p.Acct, "code", row.Cd.String)
			counts[lifecycle.CountDroppedFeatures]++
			continue
		}
		// a blank building id makes a property-level feature
		var sID *uuid.UUID
		if bld := strings.TrimSpace(row.BldNum.String); bld != "" {
			id, ok := structureIDs[bld]
			if !ok {
				slog.Debug("Extra feature without structure",
					"acct", p.Acct, "bld_num", row.BldNum.String)
				counts[lifecycle.CountDroppedFeatures]++
				continue
			}
			sID = &id
		}
		if err := tx.Create(buildFeature(row, propertyID, sID, typeID)).Error; err != nil {
			return recordError(p.Acct, "extra feature", err)
		}
		counts[lifecycle.CountExtraFeatures]++
	}

	for i := range fixtures {
		row := &fixtures[i]
		sID, ok := structureIDs[strings.TrimSpace(row.BldNum.String)]
		if !ok {
			slog.Debug("Fixture without structure",
				"acct", p.Acct, "bld_num", row.BldNum.String)
			counts[lifecycle.CountDroppedFixtures]++
			continue
		}
		typeID, ok := r.ref.FixtureTypes[strings.TrimSpace(row.Type.String)]
		if !ok {
			slog.Debug("Unresolved fixture code",
				"acct", p.Acct, "code", row.Type.String)
			counts[lifecycle.CountDroppedFixtures]++
			continue
		}
		if err := tx.Create(buildFixture(row, propertyID, sID, typeID)).Error; err != nil {
			return recordError(p.Acct, "fixture", err)
		}
		counts[lifecycle.CountFixtures]++
	}

	return nil
}

// buildingClass translates a legacy building class with code maps of the
// tax year. Codes without a mapping are kept as they are.
func (r *run) buildingClass(
	ctx context.Context,
	tx *gorm.DB,
	raw string,
) (*string, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return nil, nil
	}
	if res, ok := r.classes[code]; ok {
		return &res, nil
	}

	year := r.cfg.Migrate.TaxYear
	std, found, err := iocodemap.New(tx).ResolveToStandard(
		ctx, r.ref.JurisdictionID, buildingClassType, code, &year,
	)
	if err != nil {
		return nil, err
	}
	res := code
	if found {
		res = std
	}
	r.classes[code] = res
	return &res, nil
}

// isDuplicate detects unique constraint violations, the sign of a record
// migrated by an earlier run.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

// recordError keeps the cause chain intact for duplicate detection.
// Record errors are logged, never returned to the caller.
func recordError(acct, entity string, err error) error {
	return fmt.Errorf("account %s: cannot create %s: %w", acct, entity, err)
}
