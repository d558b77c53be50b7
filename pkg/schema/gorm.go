package schema

import (
	"gorm.io/gorm"
)

// AllModels returns canonical schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Jurisdiction{},
		&Address{},
		&ElementType{},
		&FeatureType{},
		&FixtureType{},
		&Property{},
		&Valuation{},
		&Structure{},
		&StructureElement{},
		&ExtraFeature{},
		&Fixture{},
		&CodeMap{},
	}
}

// LegacyModels returns the legacy staging models.
func LegacyModels() []any {
	return []any{
		&LegacyProperty{},
		&LegacyStructuralElement{},
		&LegacyExtraFeature{},
		&LegacyFixture{},
	}
}

// Migrate runs GORM AutoMigrate to create or update the canonical schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// MigrateLegacy runs GORM AutoMigrate for the legacy staging tables.
func MigrateLegacy(db *gorm.DB) error {
	return db.AutoMigrate(LegacyModels()...)
}
