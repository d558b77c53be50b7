package iomigrate

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/internal/iobootstrap"
	"github.com/ptnexus/apdb/internal/iotesting"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/errcode"
	"github.com/ptnexus/apdb/pkg/lifecycle"
	"github.com/ptnexus/apdb/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const acct = "1234567890123"

func newMigrator(cfg *config.Config, db *gorm.DB) *migrator {
	op := &iotesting.GORMOperator{DB: db}
	return New(cfg, op, iobootstrap.New(cfg, op)).(*migrator)
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var res int64
	require.NoError(t, db.Model(model).Count(&res).Error)
	return res
}

func seedAccounts(t *testing.T, db *gorm.DB, accts ...string) {
	t.Helper()
	for _, v := range accts {
		iotesting.SeedLegacy(t, db, iotesting.LegacyProperty(v))
	}
}

func gnCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr), "expected *gn.Error, got %v", err)
	return gnErr.Code
}

func TestMigrateAll(t *testing.T) {
	db := iotesting.NewSQLiteDB(t)

	p := iotesting.LegacyProperty(acct)
	p.TotApprVal = iotesting.Str("")
	noDscr := iotesting.LegacyElement(acct, "1", "RF", "", "")
	noDscr.TypeDscr = iotesting.Null

	iotesting.SeedLegacy(t, db,
		p,
		iotesting.LegacyElement(acct, "1", "FND", "Foundation", "Foundation Type"),
		noDscr,
		iotesting.LegacyElement(acct, "2", "EXT", "Exterior Wall", "Exterior"),
		iotesting.LegacyElement(acct, "A", "EXT", "Exterior Wall", "Exterior"),
		iotesting.LegacyFeature(acct, "", "POOL", "Swimming Pool"),
		iotesting.LegacyFeature(acct, "1", "SHED", "Shed"),
		iotesting.LegacyFeature(acct, "9", "SHED", "Shed"),
		iotesting.LegacyFixture(acct, "1", "FPL", "Fireplace", "2"),
		iotesting.LegacyFixture(acct, "9", "FPL", "Fireplace", "1"),
	)

	m := newMigrator(config.New(), db)
	assert.Equal(t, lifecycle.NotStarted, m.State())

	res, err := m.MigrateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Completed, m.State())

	assert.Equal(t, lifecycle.Counts{
		lifecycle.CountJurisdictions:     1,
		lifecycle.CountElementTypes:      2,
		lifecycle.CountFeatureTypes:      2,
		lifecycle.CountFixtureTypes:      1,
		lifecycle.CountCodeMaps:          16,
		lifecycle.CountAddresses:         1,
		lifecycle.CountProperties:        1,
		lifecycle.CountValuations:        1,
		lifecycle.CountStructures:        3,
		lifecycle.CountStructureElements: 3,
		lifecycle.CountExtraFeatures:     2,
		lifecycle.CountFixtures:          1,
		lifecycle.CountDroppedElements:   1,
		lifecycle.CountDroppedFeatures:   1,
		lifecycle.CountDroppedFixtures:   1,
	}, res)

	var prop schema.Property
	require.NoError(t, db.Preload("SitusAddress").
		First(&prop, "account_number = ?", acct).Error)
	assert.Equal(t, acct, *prop.SourceAccountID)
	require.NotNil(t, prop.SitusAddress)
	assert.Equal(t, "100 MAIN ST", prop.SitusAddress.FormattedAddress)

	var val schema.Valuation
	require.NoError(t, db.First(&val, "property_id = ?", prop.ID).Error)
	assert.Equal(t, 2024, val.TaxYear)
	require.True(t, val.MarketValue.Valid)
	assert.True(t, val.MarketValue.Decimal.Equal(decimal.NewFromInt(150000)))
	assert.False(t, val.AppraisedValue.Valid)

	var structures []schema.Structure
	require.NoError(t, db.Order("structure_sequence").
		Find(&structures, "property_id = ?", prop.ID).Error)
	require.Len(t, structures, 3)
	assert.Equal(t, "1", *structures[0].SourceBuildingID)
	assert.True(t, structures[0].IsPrimary)
	require.NotNil(t, structures[0].BuildingClass)
	assert.Equal(t, "C", *structures[0].BuildingClass)
	assert.Equal(t, "2", *structures[1].SourceBuildingID)
	assert.False(t, structures[1].IsPrimary)
	assert.Nil(t, structures[1].BuildingClass)
	// "A" has sequence 1 on its own, which building "1" already holds,
	// so it gets the next free sequence instead of failing the record.
	assert.Equal(t, "A", *structures[2].SourceBuildingID)
	assert.Equal(t, 3, structures[2].StructureSequence)

	var n int64
	require.NoError(t, db.Model(&schema.ExtraFeature{}).
		Where("structure_id = ?", structures[0].ID).Count(&n).Error)
	assert.Equal(t, int64(1), n, "building feature")
	require.NoError(t, db.Model(&schema.ExtraFeature{}).
		Where("structure_id IS NULL").Count(&n).Error)
	assert.Equal(t, int64(1), n, "property-level feature")

	var fixture schema.Fixture
	require.NoError(t, db.First(&fixture).Error)
	assert.Equal(t, structures[0].ID, fixture.StructureID)
	assert.True(t, fixture.Units.Decimal.Equal(decimal.NewFromInt(2)))
}

func TestMigrateAll_FeatureOfUnknownBuilding(t *testing.T) {
	db := iotesting.NewSQLiteDB(t)
	iotesting.SeedLegacy(t, db,
		iotesting.LegacyProperty(acct),
		iotesting.LegacyElement(acct, "1", "FND", "Foundation", "Foundation Type"),
		iotesting.LegacyFeature(acct, "9", "SHED", "Shed"),
	)

	res, err := newMigrator(config.New(), db).MigrateAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res[lifecycle.CountExtraFeatures])
	assert.Equal(t, 1, res[lifecycle.CountDroppedFeatures])
	assert.Equal(t, int64(0), count(t, db, &schema.ExtraFeature{}))
}

func TestMigrateAll_NoAddress(t *testing.T) {
	db := iotesting.NewSQLiteDB(t)
	p := iotesting.LegacyProperty("1")
	p.SiteAddr1 = iotesting.Str(" ")
	iotesting.SeedLegacy(t, db, p)

	res, err := newMigrator(config.New(), db).MigrateAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res[lifecycle.CountAddresses])
	assert.Equal(t, 1, res[lifecycle.CountProperties])

	var prop schema.Property
	require.NoError(t, db.First(&prop).Error)
	assert.Nil(t, prop.SitusAddressID)
}

func TestMigrateAll_PriorYear(t *testing.T) {
	db := iotesting.NewSQLiteDB(t)
	withPrior := iotesting.LegacyProperty("1")
	withPrior.PriorTotMktVal = iotesting.Str("140,000")
	iotesting.SeedLegacy(t, db, withPrior, iotesting.LegacyProperty("2"))

	cfg := config.New()
	cfg.Update([]config.Option{config.OptMigrateWithPriorYear(true)})

	res, err := newMigrator(cfg, db).MigrateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res[lifecycle.CountValuations])

	var years []int
	require.NoError(t, db.Model(&schema.Valuation{}).
		Order("tax_year").Pluck("tax_year", &years).Error)
	assert.Equal(t, []int{2023, 2024, 2024}, years)
}

func TestMigrateAll_RecordFailure(t *testing.T) {
	db := iotesting.NewSQLiteDB(t)
	seedAccounts(t, db, "1", "2", "3")

	err := db.Callback().Create().Before("gorm:create").
		Register("test:reject_valuation", func(tx *gorm.DB) {
			v, ok := tx.Statement.Dest.(*schema.Valuation)
			if ok && v.SourceRecordID != nil && *v.SourceRecordID == "2" {
				_ = tx.AddError(errors.New("valuation rejected"))
			}
		})
	require.NoError(t, err)

	m := newMigrator(config.New(), db)
	res, err := m.MigrateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Completed, m.State())

	assert.Equal(t, 2, res[lifecycle.CountProperties])
	assert.Equal(t, 2, res[lifecycle.CountAddresses])
	assert.Equal(t, 1, res[lifecycle.CountFailedRecords])
	assert.Zero(t, res[lifecycle.CountDuplicates])

	// the failed record is rolled back completely
	assert.Equal(t, int64(2), count(t, db, &schema.Property{}))
	assert.Equal(t, int64(2), count(t, db, &schema.Address{}))
	var n int64
	require.NoError(t, db.Model(&schema.Property{}).
		Where("account_number = ?", "2").Count(&n).Error)
	assert.Zero(t, n)
}

func TestMigrateAll_Duplicates(t *testing.T) {
	db := iotesting.NewSQLiteDB(t)
	seedAccounts(t, db, "1", "2", "3")

	cfg := config.New()
	_, err := newMigrator(cfg, db).MigrateAll(context.Background())
	require.NoError(t, err)

	t.Run("second bootstrap fails", func(t *testing.T) {
		m := newMigrator(cfg, db)
		_, err := m.MigrateAll(context.Background())
		require.Error(t, err)
		assert.Equal(t, errcode.BootstrapJurisdictionError, gnCode(t, err))
		assert.Equal(t, lifecycle.Failed, m.State())
	})

	t.Run("resumed run reports duplicates", func(t *testing.T) {
		cfg.Update([]config.Option{config.OptMigrateResume(true)})
		res, err := newMigrator(cfg, db).MigrateAll(context.Background())
		require.NoError(t, err)
		assert.Zero(t, res[lifecycle.CountProperties])
		assert.Equal(t, 3, res[lifecycle.CountDuplicates])
		assert.Equal(t, 3, res[lifecycle.CountFailedRecords])
		assert.Equal(t, int64(3), count(t, db, &schema.Property{}))
		assert.Equal(t, int64(3), count(t, db, &schema.Address{}))
	})
}

func TestMigrateAll_ResumeBuildingClass(t *testing.T) {
	db := iotesting.NewSQLiteDB(t)
	p := iotesting.LegacyProperty("1")
	p.EconBldClass = iotesting.Str("4")
	q := iotesting.LegacyProperty("2")
	q.EconBldClass = iotesting.Str("Z")
	iotesting.SeedLegacy(t, db, p, q,
		iotesting.LegacyElement("1", "1", "FND", "Foundation", "Foundation"),
		iotesting.LegacyElement("2", "1", "FND", "Foundation", "Foundation"),
	)

	cfg := config.New()
	op := &iotesting.GORMOperator{DB: db}
	ref, err := iobootstrap.New(cfg, op).Bootstrap(context.Background())
	require.NoError(t, err)

	from := 2020
	require.NoError(t, db.Create(&schema.CodeMap{
		JurisdictionID: ref.JurisdictionID, CodeType: "building_class",
		SourceCode: "4", StdCode: "D", StdDescription: "Class D",
		IsActive: true, Version: 1, EffectiveFromYear: &from,
	}).Error)

	cfg.Update([]config.Option{config.OptMigrateResume(true)})
	res, err := newMigrator(cfg, db).MigrateAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res[lifecycle.CountJurisdictions])
	assert.Equal(t, 2, res[lifecycle.CountStructures])

	var classes []string
	require.NoError(t, db.Model(&schema.Structure{}).
		Joins("JOIN properties ON properties.id = structures.property_id").
		Order("properties.account_number").
		Pluck("structures.building_class", &classes).Error)
	assert.Equal(t, []string{"D", "Z"}, classes)
}

func TestMigrateAll_Windows(t *testing.T) {
	db := iotesting.NewSQLiteDB(t)
	seedAccounts(t, db, "5", "3", "1", "4", "2")

	cfg := config.New()
	cfg.Update([]config.Option{config.OptDatabaseBatchSize(2)})
	m := newMigrator(cfg, db)

	var offsets []int
	m.windowHook = func(offset int) { offsets = append(offsets, offset) }

	res, err := m.MigrateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, offsets)
	assert.Equal(t, 5, res[lifecycle.CountProperties])
}

func TestMigrateAll_Cancelled(t *testing.T) {
	db := iotesting.NewSQLiteDB(t)
	seedAccounts(t, db, "1", "2", "3", "4", "5")

	cfg := config.New()
	cfg.Update([]config.Option{config.OptDatabaseBatchSize(2)})
	m := newMigrator(cfg, db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.windowHook = func(int) { cancel() }

	res, err := m.MigrateAll(ctx)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, errcode.MigrateCancelledError, gnCode(t, err))
	assert.Equal(t, lifecycle.Failed, m.State())

	// the first window is committed
	assert.Equal(t, int64(2), count(t, db, &schema.Property{}))
}

func TestMigrateAll_WindowFailure(t *testing.T) {
	db := iotesting.NewSQLiteDB(t)
	seedAccounts(t, db, "1", "2", "3", "4", "5")

	var windows int
	err := db.Callback().Query().Before("gorm:query").
		Register("test:fail_second_window", func(tx *gorm.DB) {
			if _, ok := tx.Statement.Dest.(*[]schema.LegacyProperty); !ok {
				return
			}
			windows++
			if windows == 2 {
				_ = tx.AddError(errors.New("connection lost"))
			}
		})
	require.NoError(t, err)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptDatabaseBatchSize(2)})
	m := newMigrator(cfg, db)

	res, err := m.MigrateAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, errcode.MigrateWindowError, gnCode(t, err))
	assert.Equal(t, lifecycle.Failed, m.State())
	assert.Equal(t, int64(2), count(t, db, &schema.Property{}))
}

func TestMigratorContract(t *testing.T) {
	var _ lifecycle.Migrator = New(nil, nil, nil)
}
