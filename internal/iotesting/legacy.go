package iotesting

import (
	"testing"

	"github.com/ptnexus/apdb/pkg/schema"
	"gorm.io/gorm"
)

// SeedLegacy inserts legacy staging rows. Every row must be a pointer to
// one of the schema.Legacy* models.
func SeedLegacy(t *testing.T, db *gorm.DB, rows ...any) {
	t.Helper()
	for _, v := range rows {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("cannot seed legacy row %#v: %v", v, err)
		}
	}
}

// LegacyProperty returns a property_data row for a single family house
// with all commonly populated fields set.
func LegacyProperty(acct string) *schema.LegacyProperty {
	return &schema.LegacyProperty{
		Acct:             acct,
		StrNum:           Str("100"),
		Str:              Str("MAIN"),
		StrSfx:           Str("ST"),
		SiteAddr1:        Str("100 MAIN ST"),
		StateClass:       Str("A1"),
		SchoolDist:       Str("48"),
		NeighborhoodCode: Str("8014.02"),
		NeighborhoodGrp:  Str("1101"),
		MarketArea1:      Str("200"),
		MarketArea1Dscr:  Str("ISD 01 - Inner Loop"),
		EconArea:         Str("3"),
		EconBldClass:     Str("C"),
		YrImpr:           Str("1985"),
		LandAr:           Str("7,500"),
		Acreage:          Str("0.1722"),
		LandVal:          Str("50,000"),
		BldVal:           Str("100,000"),
		XFeaturesVal:     Str("2,500"),
		AssessedVal:      Str("140,000"),
		TotApprVal:       Str("150,000"),
		TotMktVal:        Str("150,000"),
		ValueStatus:      Str("Noticed"),
		Noticed:          Str("Y"),
		Protested:        Str("N"),
		Lgl1:             Str("LT 1 BLK 2 MAIN ST ADDN"),
	}
}

// LegacyElement returns a structural_elements row.
func LegacyElement(acct, bld, code, dscr, category string) *schema.LegacyStructuralElement {
	return &schema.LegacyStructuralElement{
		Acct:         acct,
		BldNum:       Str(bld),
		Code:         Str(code),
		Adj:          Str("1.00"),
		TypeDscr:     Str(dscr),
		CategoryDscr: Str(category),
	}
}

// LegacyFeature returns an extra_features_detail row. An empty bld makes it
// a property-level feature.
func LegacyFeature(acct, bld, cd, dscr string) *schema.LegacyExtraFeature {
	res := &schema.LegacyExtraFeature{
		Acct:      acct,
		Cd:        Str(cd),
		Dscr:      Str(dscr),
		Grade:     Str("C"),
		CondCd:    Str("A"),
		Length:    Str("20"),
		Width:     Str("10"),
		Units:     Str("200"),
		UnitPrice: Str("12.50"),
		ActYr:     Str("1990"),
		DprVal:    Str("1,800"),
	}
	if bld != "" {
		res.BldNum = Str(bld)
	}
	return res
}

// LegacyFixture returns a fixtures row.
func LegacyFixture(acct, bld, typ, dscr, units string) *schema.LegacyFixture {
	return &schema.LegacyFixture{
		Acct:     acct,
		BldNum:   Str(bld),
		Type:     Str(typ),
		TypeDscr: Str(dscr),
		Units:    Str(units),
	}
}
