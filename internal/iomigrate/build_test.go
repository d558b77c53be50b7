package iomigrate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ptnexus/apdb/internal/iotesting"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	tests := []struct {
		id      string
		seq     int
		primary bool
	}{
		{"1", 1, true},
		{"2", 2, false},
		{"A", 1, false},
		{"12", 12, false},
		{"01", 1, false},
		{"1B", 1, false},
		{"-3", 1, false},
	}
	for _, v := range tests {
		assert.Equal(t, v.seq, sequence(v.id), v.id)
		assert.Equal(t, v.primary, isPrimary(v.id), v.id)
	}
}

func TestBuildings(t *testing.T) {
	t.Run("collision gets next free sequence", func(t *testing.T) {
		res, bumped := buildings([]string{"A", "2", "1", "1"})
		assert.Equal(t, []building{{"1", 1}, {"2", 2}, {"A", 3}}, res)
		assert.Equal(t, []building{{"A", 3}}, bumped)
	})

	t.Run("numeric before lexical", func(t *testing.T) {
		res, bumped := buildings([]string{"10", "2", " ", "", "2 ", "B", "A"})
		assert.Equal(t, []building{{"2", 2}, {"10", 10}, {"A", 1}, {"B", 3}}, res)
		assert.Equal(t, []building{{"B", 3}}, bumped)
	})

	t.Run("empty", func(t *testing.T) {
		res, bumped := buildings(nil)
		assert.Empty(t, res)
		assert.Empty(t, bumped)
	})
}

func TestBuildAddress(t *testing.T) {
	jc := config.New().Migrate.Jurisdiction

	p := iotesting.LegacyProperty("1")
	addr := buildAddress(p, jc)
	require.NotNil(t, addr)
	assert.Equal(t, "100 MAIN ST", addr.Line1)
	assert.Nil(t, addr.Line2)
	assert.Equal(t, "100 MAIN ST", addr.FormattedAddress)
	assert.Equal(t, "Houston", addr.City)
	assert.Equal(t, "TX", addr.State)
	assert.Equal(t, "MAIN", *addr.StreetName)
	assert.Nil(t, addr.StreetDirection)
	assert.False(t, addr.IsStandardized)

	p.SiteAddr2 = iotesting.Str("APT 4")
	addr = buildAddress(p, jc)
	assert.Equal(t, "100 MAIN ST, APT 4", addr.FormattedAddress)

	p.SiteAddr1 = iotesting.Str("   ")
	assert.Nil(t, buildAddress(p, jc))
	p.SiteAddr1 = iotesting.Null
	assert.Nil(t, buildAddress(p, jc))
}

func TestBuildProperty(t *testing.T) {
	p := iotesting.LegacyProperty("1234567890123")
	p.Acreage = iotesting.Str("n/a")
	addrID := uuid.New()
	jID := uuid.New()

	prop := buildProperty(p, jID, &addrID)
	assert.Equal(t, jID, prop.JurisdictionID)
	assert.Equal(t, "1234567890123", prop.AccountNumber)
	assert.Equal(t, "1234567890123", *prop.SourceAccountID)
	assert.Equal(t, addrID, *prop.SitusAddressID)
	assert.Equal(t, "A1", *prop.StateClass)
	assert.Equal(t, "ISD 01 - Inner Loop", *prop.MarketArea1Desc)
	assert.Equal(t, 7500.0, *prop.LandAreaSqft)
	assert.Nil(t, prop.Acreage)
	assert.Equal(t, 1985, *prop.YearImproved)
	assert.Nil(t, prop.YearAnnexed)
	assert.True(t, prop.IsActive)
}

func TestBuildValuation(t *testing.T) {
	mc := config.New().Migrate
	p := iotesting.LegacyProperty("1234567890123")
	p.TotApprVal = iotesting.Str("")
	p.LandVal = iotesting.Str("50,000 USD")

	v := buildValuation(p, uuid.New(), mc)
	assert.Equal(t, 2024, v.TaxYear)
	require.True(t, v.MarketValue.Valid)
	assert.True(t, v.MarketValue.Decimal.Equal(decimal.NewFromInt(150000)))
	assert.False(t, v.AppraisedValue.Valid)
	assert.False(t, v.LandValue.Valid)
	assert.True(t, v.ImprovementValue.Decimal.Equal(decimal.NewFromInt(100000)))
	assert.True(t, *v.IsNoticed)
	assert.False(t, *v.IsProtested)
	assert.Equal(t, "HCAD_MIGRATION", *v.DataSource)
	assert.False(t, v.IsCertified)
}

func TestBuildPriorValuation(t *testing.T) {
	mc := config.New().Migrate
	p := iotesting.LegacyProperty("1")
	assert.Nil(t, buildPriorValuation(p, uuid.New(), mc))

	p.PriorTotMktVal = iotesting.Str("140,000")
	v := buildPriorValuation(p, uuid.New(), mc)
	require.NotNil(t, v)
	assert.Equal(t, 2023, v.TaxYear)
	assert.True(t, v.MarketValue.Decimal.Equal(decimal.NewFromInt(140000)))
	assert.False(t, v.LandValue.Valid)
}

func TestBuildFeature(t *testing.T) {
	row := iotesting.LegacyFeature("1", "", "POOL", "Pool")
	f := buildFeature(row, uuid.New(), nil, uuid.New())
	assert.Nil(t, f.StructureID)
	assert.True(t, f.Quantity.Decimal.Equal(decimal.NewFromInt(200)))
	assert.True(t, f.UnitPrice.Decimal.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, f.DepreciatedValue.Decimal.Equal(decimal.NewFromInt(1800)))
	assert.Equal(t, 1990, *f.ActualYear)
	assert.Nil(t, f.EffectiveYear)
	assert.Equal(t, "POOL", *f.SourceCode)
}

func TestBuildOversizedValues(t *testing.T) {
	mc := config.New().Migrate
	p := iotesting.LegacyProperty("1")
	p.TotMktVal = iotesting.Str("1e15")
	p.LandVal = iotesting.Str("1234567890123")
	p.BldVal = iotesting.Str("999,999,999,999.99")

	v := buildValuation(p, uuid.New(), mc)
	assert.False(t, v.MarketValue.Valid)
	assert.False(t, v.LandValue.Valid)
	require.True(t, v.ImprovementValue.Valid)
	assert.Equal(t, "999999999999.99", v.ImprovementValue.Decimal.StringFixed(2))

	row := iotesting.LegacyFeature("1", "", "POOL", "Pool")
	row.PctCond = iotesting.Str("1000")
	row.Length = iotesting.Str("100000000")
	row.UnitPrice = iotesting.Str("12.345")
	f := buildFeature(row, uuid.New(), nil, uuid.New())
	assert.False(t, f.ConditionPercent.Valid)
	assert.False(t, f.Length.Valid)
	assert.Equal(t, "12.35", f.UnitPrice.Decimal.String())
	assert.True(t, f.Quantity.Valid)
}
