// Package coerce converts free-form legacy text fields into typed values.
//
// Legacy exports store every value as text: numbers with thousands
// separators, blanks for missing data and occasional garbage. Functions in
// this package never fail. A value that cannot be parsed is reported as
// absent, so it is stored as NULL and never confused with zero.
package coerce

import (
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"
)

// clean trims whitespace and strips thousands separators.
func clean(raw string) string {
	s := strings.TrimSpace(raw)
	return strings.ReplaceAll(s, ",", "")
}

// Decimal parses raw into an exact decimal.
// Empty, blank and malformed input yields an invalid NullDecimal.
func Decimal(raw string) decimal.NullDecimal {
	s := clean(raw)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Numeric parses raw like Decimal and fits it into a numeric(precision,
// scale) column. The value is rounded to scale digits; a value whose integer
// part does not fit the column is treated as absent.
func Numeric(raw string, precision, scale int) decimal.NullDecimal {
	d := Decimal(raw)
	if !d.Valid {
		return d
	}
	v := d.Decimal.Round(int32(scale))
	if v.Abs().Cmp(decimal.New(1, int32(precision-scale))) >= 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(v)
}

// Int parses raw into an integer. Integral decimals such as "12.0" are
// accepted, fractional ones are not.
func Int(raw string) *int {
	d := Decimal(raw)
	if !d.Valid || !d.Decimal.IsInteger() {
		return nil
	}
	if !d.Decimal.BigInt().IsInt64() {
		return nil
	}
	res := int(d.Decimal.IntPart())
	return &res
}

// Float parses raw into a float64. Used for measurements that are not
// money, like land area and acreage.
func Float(raw string) *float64 {
	d := Decimal(raw)
	if !d.Valid {
		return nil
	}
	res := d.Decimal.InexactFloat64()
	return &res
}

// Flag converts a legacy Y/N marker. "Y" (any case) is true,
// any other non-blank value is false, blank is absent.
func Flag(raw string) *bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	res := strings.EqualFold(s, "Y")
	return &res
}

// Text returns the legacy value verbatim, or nil for NULL.
func Text(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	res := ns.String
	return &res
}

// NonBlank returns the trimmed value, or nil when it is NULL or blank.
func NonBlank(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	res := strings.TrimSpace(ns.String)
	if res == "" {
		return nil
	}
	return &res
}
