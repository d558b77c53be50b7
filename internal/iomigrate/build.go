package iomigrate

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ptnexus/apdb/pkg/coerce"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/schema"
	"github.com/shopspring/decimal"
)

// buildAddress returns the situs address of a legacy property, or nil
// when the first address line is blank.
func buildAddress(p *schema.LegacyProperty, jc config.JurisdictionConfig) *schema.Address {
	line1 := strings.TrimSpace(p.SiteAddr1.String)
	if line1 == "" {
		return nil
	}
	line2 := coerce.NonBlank(p.SiteAddr2)

	formatted := line1
	if line2 != nil {
		formatted += ", " + *line2
	}

	return &schema.Address{
		Line1:            line1,
		Line2:            line2,
		City:             jc.DefaultCity,
		State:            jc.State,
		StreetNumber:     coerce.NonBlank(p.StrNum),
		StreetName:       coerce.NonBlank(p.Str),
		StreetSuffix:     coerce.NonBlank(p.StrSfx),
		StreetDirection:  coerce.NonBlank(p.StrSfxDir),
		IsStandardized:   false,
		FormattedAddress: formatted,
	}
}

// buildProperty copies classification fields verbatim and coerces
// measurements and years.
func buildProperty(
	p *schema.LegacyProperty,
	jurisdictionID uuid.UUID,
	situsID *uuid.UUID,
) *schema.Property {
	acct := p.Acct
	return &schema.Property{
		JurisdictionID:    jurisdictionID,
		AccountNumber:     acct,
		SitusAddressID:    situsID,
		StateClass:        coerce.Text(p.StateClass),
		SchoolDistrict:    coerce.Text(p.SchoolDist),
		NeighborhoodCode:  coerce.Text(p.NeighborhoodCode),
		NeighborhoodGroup: coerce.Text(p.NeighborhoodGrp),
		MarketArea1:       coerce.Text(p.MarketArea1),
		MarketArea1Desc:   coerce.Text(p.MarketArea1Dscr),
		MarketArea2:       coerce.Text(p.MarketArea2),
		MarketArea2Desc:   coerce.Text(p.MarketArea2Dscr),
		EconomicArea:      coerce.Text(p.EconArea),
		LandAreaSqft:      coerce.Float(p.LandAr.String),
		Acreage:           coerce.Float(p.Acreage.String),
		LegalDescription:  coerce.Text(p.Lgl1),
		YearImproved:      coerce.Int(p.YrImpr.String),
		YearAnnexed:       coerce.Int(p.YrAnnexed.String),
		SourceAccountID:   &acct,
		IsActive:          true,
	}
}

// buildValuation converts current values for the tax year. Every field
// is coerced on its own, a malformed value leaves only that field NULL.
func buildValuation(
	p *schema.LegacyProperty,
	propertyID uuid.UUID,
	mc config.MigrateConfig,
) *schema.Valuation {
	return &schema.Valuation{
		PropertyID:           propertyID,
		TaxYear:              mc.TaxYear,
		LandValue:            money(p.LandVal.String),
		ImprovementValue:     money(p.BldVal.String),
		ExtraFeaturesValue:   money(p.XFeaturesVal.String),
		AgriculturalValue:    money(p.AgVal.String),
		AssessedValue:        money(p.AssessedVal.String),
		MarketValue:          money(p.TotMktVal.String),
		AppraisedValue:       money(p.TotApprVal.String),
		NewConstructionValue: money(p.NewConstructionVal.String),
		ReplacementCostNew:   money(p.TotRcnVal.String),
		IsNoticed:            coerce.Flag(p.Noticed.String),
		IsProtested:          coerce.Flag(p.Protested.String),
		ValueStatus:          coerce.Text(p.ValueStatus),
		DataSource:           optional(mc.DataSource),
		SourceRecordID:       optional(p.Acct),
	}
}

// buildPriorValuation converts prior_* values into a valuation of the
// previous tax year. It returns nil when none of them has a value.
func buildPriorValuation(
	p *schema.LegacyProperty,
	propertyID uuid.UUID,
	mc config.MigrateConfig,
) *schema.Valuation {
	res := &schema.Valuation{
		PropertyID:         propertyID,
		TaxYear:            mc.TaxYear - 1,
		LandValue:          money(p.PriorLandVal.String),
		ImprovementValue:   money(p.PriorBldVal.String),
		ExtraFeaturesValue: money(p.PriorXFeaturesVal.String),
		AgriculturalValue:  money(p.PriorAgVal.String),
		MarketValue:        money(p.PriorTotMktVal.String),
		AppraisedValue:     money(p.PriorTotApprVal.String),
		DataSource:         optional(mc.DataSource),
		SourceRecordID:     optional(p.Acct),
	}

	if !res.LandValue.Valid && !res.ImprovementValue.Valid &&
		!res.ExtraFeaturesValue.Valid && !res.AgriculturalValue.Valid &&
		!res.MarketValue.Valid && !res.AppraisedValue.Valid {
		return nil
	}
	return res
}

// building is a legacy building of one account and its structure
// sequence.
type building struct {
	id  string
	seq int
}

// buildings returns distinct non-blank building ids, numeric ids first in
// numeric order, then the rest in lexical order, with their structure
// sequences. A numeric id is its own sequence, any other id gets 1.
// When a sequence is taken, the next free one is used and reported in
// bumped.
func buildings(ids []string) (res []building, bumped []building) {
	var uniq []string
	for _, v := range ids {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(uniq, v) {
			uniq = append(uniq, v)
		}
	}
	slices.SortFunc(uniq, compareBuildingIDs)

	taken := make(map[int]bool, len(uniq))
	for _, v := range uniq {
		seq := sequence(v)
		if taken[seq] {
			for taken[seq] {
				seq++
			}
			bumped = append(bumped, building{id: v, seq: seq})
		}
		taken[seq] = true
		res = append(res, building{id: v, seq: seq})
	}
	return res, bumped
}

// sequence is the natural structure sequence of a building id.
func sequence(id string) int {
	if n, ok := numericID(id); ok {
		return n
	}
	return 1
}

func numericID(id string) (int, bool) {
	for _, r := range id {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, false
	}
	return n, true
}

func compareBuildingIDs(a, b string) int {
	na, okA := numericID(a)
	nb, okB := numericID(b)
	switch {
	case okA && okB:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// isPrimary reports whether a building id denotes the main building.
func isPrimary(id string) bool {
	return id == "1"
}

func buildElement(
	row *schema.LegacyStructuralElement,
	structureID, typeID uuid.UUID,
) *schema.StructureElement {
	return &schema.StructureElement{
		StructureID:       structureID,
		ElementTypeID:     typeID,
		Grade:             coerce.NonBlank(row.Adj),
		SourceCode:        coerce.NonBlank(row.Code),
		SourceDescription: coerce.Text(row.TypeDscr),
		SourceCategory:    coerce.Text(row.CategoryDscr),
	}
}

func buildFeature(
	row *schema.LegacyExtraFeature,
	propertyID uuid.UUID,
	structureID *uuid.UUID,
	typeID uuid.UUID,
) *schema.ExtraFeature {
	return &schema.ExtraFeature{
		PropertyID:        propertyID,
		StructureID:       structureID,
		FeatureTypeID:     typeID,
		Quantity:          quantity(row.Units.String),
		Length:            dimension(row.Length.String),
		Width:             dimension(row.Width.String),
		Grade:             coerce.NonBlank(row.Grade),
		ConditionCode:     coerce.NonBlank(row.CondCd),
		ConditionPercent:  percent(row.PctCond.String),
		UnitPrice:         quantity(row.UnitPrice.String),
		AdjustedUnitPrice: quantity(row.AdjUnitPrice.String),
		DepreciatedValue:  money(row.DprVal.String),
		AssessedValue:     money(row.AsdVal.String),
		ActualYear:        coerce.Int(row.ActYr.String),
		EffectiveYear:     coerce.Int(row.EffYr.String),
		PercentComplete:   percent(row.PctComp.String),
		Notes:             coerce.NonBlank(row.Note),
		SourceCode:        coerce.NonBlank(row.Cd),
		SourceDescription: coerce.Text(row.Dscr),
	}
}

func buildFixture(
	row *schema.LegacyFixture,
	propertyID, structureID, typeID uuid.UUID,
) *schema.Fixture {
	return &schema.Fixture{
		PropertyID:        propertyID,
		StructureID:       structureID,
		FixtureTypeID:     typeID,
		Units:             dimension(row.Units.String),
		SourceCode:        coerce.NonBlank(row.Type),
		SourceDescription: coerce.Text(row.TypeDscr),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Sizes follow the numeric columns in pkg/schema.
func money(raw string) decimal.NullDecimal { return coerce.Numeric(raw, 14, 2) }
func quantity(raw string) decimal.NullDecimal { return coerce.Numeric(raw, 12, 2) }
func dimension(raw string) decimal.NullDecimal { return coerce.Numeric(raw, 10, 2) }
func percent(raw string) decimal.NullDecimal { return coerce.Numeric(raw, 5, 2) }
