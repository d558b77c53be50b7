package iobootstrap

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/ptnexus/apdb/pkg/schema"
	"gorm.io/gorm"
)

// lookupRow is a distinct code with its description found in a legacy
// table.
type lookupRow struct {
	Code        string
	Description string
	Category    sql.NullString
}

// distinctLookups reads distinct (code, description) pairs where both are
// not NULL, ordered by code and description. catCol may be empty.
func distinctLookups(
	tx *gorm.DB,
	table, codeCol, descCol, catCol string,
) ([]lookupRow, error) {
	cat := "NULL"
	if catCol != "" {
		cat = catCol
	}
	cols := "DISTINCT " + codeCol + " AS code, " +
		descCol + " AS description, " + cat + " AS category"

	var rows []lookupRow
	err := tx.Table(table).
		Select(cols).
		Where(codeCol + " IS NOT NULL").
		Where(descCol + " IS NOT NULL").
		Order("code, description").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return firstByCode(rows), nil
}

// firstByCode keeps the first row of every trimmed non-empty code.
func firstByCode(rows []lookupRow) []lookupRow {
	seen := make(map[string]struct{}, len(rows))
	var res []lookupRow
	for _, v := range rows {
		v.Code = strings.TrimSpace(v.Code)
		if v.Code == "" {
			continue
		}
		if _, ok := seen[v.Code]; ok {
			continue
		}
		seen[v.Code] = struct{}{}
		v.Description = strings.TrimSpace(v.Description)
		res = append(res, v)
	}
	return res
}

// createLookups inserts one lookup entity per row and maps codes to new IDs.
func createLookups[T any](
	tx *gorm.DB,
	rows []lookupRow,
	build func(lookupRow) T,
	id func(*T) uuid.UUID,
) (map[string]uuid.UUID, error) {
	res := make(map[string]uuid.UUID, len(rows))
	if len(rows) == 0 {
		return res, nil
	}

	items := make([]T, len(rows))
	for i, v := range rows {
		items[i] = build(v)
	}
	if err := tx.CreateInBatches(&items, lookupBatchSize).Error; err != nil {
		return nil, err
	}

	for i, v := range rows {
		res[v.Code] = id(&items[i])
	}
	return res, nil
}

func createElementTypes(tx *gorm.DB, jID uuid.UUID) (map[string]uuid.UUID, error) {
	rows, err := distinctLookups(tx, schema.LegacyStructuralElementTable,
		"code", "type_dscr", "category_dscr")
	if err != nil {
		return nil, err
	}
	return createLookups(tx, rows,
		func(r lookupRow) schema.ElementType {
			return schema.ElementType{
				JurisdictionID: jID,
				Code:           r.Code,
				Description:    r.Description,
				Category:       category(r.Category),
				IsActive:       true,
			}
		},
		func(e *schema.ElementType) uuid.UUID { return e.ID },
	)
}

func createFeatureTypes(tx *gorm.DB, jID uuid.UUID) (map[string]uuid.UUID, error) {
	rows, err := distinctLookups(tx, schema.LegacyExtraFeatureTable,
		"cd", "dscr", "")
	if err != nil {
		return nil, err
	}
	return createLookups(tx, rows,
		func(r lookupRow) schema.FeatureType {
			return schema.FeatureType{
				JurisdictionID: jID,
				Code:           r.Code,
				Description:    r.Description,
				IsActive:       true,
			}
		},
		func(f *schema.FeatureType) uuid.UUID { return f.ID },
	)
}

func createFixtureTypes(tx *gorm.DB, jID uuid.UUID) (map[string]uuid.UUID, error) {
	rows, err := distinctLookups(tx, schema.LegacyFixtureTable,
		"type", "type_dscr", "")
	if err != nil {
		return nil, err
	}
	return createLookups(tx, rows,
		func(r lookupRow) schema.FixtureType {
			return schema.FixtureType{
				JurisdictionID: jID,
				Code:           r.Code,
				Description:    r.Description,
				IsActive:       true,
			}
		},
		func(f *schema.FixtureType) uuid.UUID { return f.ID },
	)
}

func category(ns sql.NullString) *string {
	s := strings.TrimSpace(ns.String)
	if !ns.Valid || s == "" {
		return nil
	}
	return &s
}
