// Package iocodemap resolves jurisdiction source codes to standard codes
// and back using the code_maps table. This is an impure I/O package that
// implements lifecycle.CodeMapper.
package iocodemap

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ptnexus/apdb/pkg/lifecycle"
	"github.com/ptnexus/apdb/pkg/schema"
	"gorm.io/gorm"
)

type codemap struct {
	db *gorm.DB
}

// New creates a CodeMapper reading through db. The handle may be a
// transaction, lookups then see uncommitted rows of that transaction.
func New(db *gorm.DB) lifecycle.CodeMapper {
	return &codemap{db: db}
}

// ResolveToStandard finds the standard code of sourceCode.
func (c *codemap) ResolveToStandard(
	ctx context.Context,
	jurisdictionID uuid.UUID,
	codeType, sourceCode string,
	year *int,
) (string, bool, error) {
	cm, err := c.find(ctx, jurisdictionID, codeType, "source_code", sourceCode, year)
	if err != nil || cm == nil {
		return "", false, err
	}
	return cm.StdCode, true, nil
}

// ResolveToSource finds the source code mapped to stdCode.
func (c *codemap) ResolveToSource(
	ctx context.Context,
	jurisdictionID uuid.UUID,
	codeType, stdCode string,
	year *int,
) (string, bool, error) {
	cm, err := c.find(ctx, jurisdictionID, codeType, "std_code", stdCode, year)
	if err != nil || cm == nil {
		return "", false, err
	}
	return cm.SourceCode, true, nil
}

// find returns the active mapping with the highest version, or nil.
// column is a fixed column name, never user input.
func (c *codemap) find(
	ctx context.Context,
	jurisdictionID uuid.UUID,
	codeType, column, code string,
	year *int,
) (*schema.CodeMap, error) {
	q := c.db.WithContext(ctx).
		Where("jurisdiction_id = ? AND code_type = ? AND is_active = ?",
			jurisdictionID, codeType, true).
		Where(column+" = ?", code)

	if year != nil {
		q = q.
			Where("(effective_from_year IS NULL OR effective_from_year <= ?)", *year).
			Where("(effective_to_year IS NULL OR effective_to_year >= ?)", *year)
	}

	var res schema.CodeMap
	err := q.Order("version DESC").First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, LookupError(codeType, code, err)
	}
	return &res, nil
}
