// Package schema provides the canonical database model of apdb.
//
// The canonical model is jurisdiction-agnostic. Every entity has a UUID
// primary key assigned on create, and created/updated timestamps maintained
// by GORM. Money and dimensions are exact decimals (numeric columns), never
// floating point. Relationships carry explicit delete semantics:
// cascading for owned children, RESTRICT for lookup types and jurisdictions,
// SET NULL for addresses.
package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base holds the identity and timestamps shared by all canonical entities.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns a random UUID when the entity does not have one.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Jurisdiction is a taxing authority (a county appraisal district).
type Jurisdiction struct {
	Base

	// State is a two-letter state code.
	State string `gorm:"type:varchar(2);not null"`

	CountyName string `gorm:"type:varchar(100);not null"`

	// FIPSCode is the federal county code, unique when present.
	FIPSCode *string `gorm:"column:fips_code;type:varchar(5);uniqueIndex"`

	FullName  string `gorm:"type:varchar(200);not null"`
	ShortName string `gorm:"type:varchar(50);not null"`

	// SourceSystem labels the legacy system the data came from.
	SourceSystem *string `gorm:"type:varchar(100)"`

	// DataFormat labels the format of legacy exports.
	DataFormat *string `gorm:"type:varchar(50)"`

	IsActive bool `gorm:"not null"`

	Properties   []Property    `gorm:"constraint:OnDelete:RESTRICT"`
	ElementTypes []ElementType `gorm:"constraint:OnDelete:RESTRICT"`
	FeatureTypes []FeatureType `gorm:"constraint:OnDelete:RESTRICT"`
	FixtureTypes []FixtureType `gorm:"constraint:OnDelete:RESTRICT"`
	CodeMaps     []CodeMap     `gorm:"constraint:OnDelete:CASCADE"`
}

// Address is a postal location. Addresses created from legacy data are
// never standardized.
type Address struct {
	Base

	Line1 string  `gorm:"type:varchar(255);not null"`
	Line2 *string `gorm:"type:varchar(255)"`

	City    string  `gorm:"type:varchar(100);not null"`
	State   string  `gorm:"type:varchar(2);not null"`
	ZipCode *string `gorm:"type:varchar(10)"`

	StreetNumber    *string `gorm:"type:varchar(20)"`
	StreetName      *string `gorm:"type:varchar(100)"`
	StreetSuffix    *string `gorm:"type:varchar(20)"`
	StreetDirection *string `gorm:"type:varchar(10)"`

	UnitType   *string `gorm:"type:varchar(20)"`
	UnitNumber *string `gorm:"type:varchar(20)"`

	Latitude  *float64
	Longitude *float64

	IsStandardized        bool    `gorm:"not null"`
	StandardizationSource *string `gorm:"type:varchar(50)"`

	// FormattedAddress is the single-line display form.
	FormattedAddress string `gorm:"type:text;not null"`
}

// Property is an appraisal unit identified by an account number that is
// unique within its jurisdiction.
type Property struct {
	Base

	JurisdictionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_properties_jurisdiction_account,priority:1"`
	AccountNumber  string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_properties_jurisdiction_account,priority:2"`
	ParcelNumber   *string   `gorm:"type:varchar(50)"`

	SitusAddressID   *uuid.UUID `gorm:"type:uuid;index"`
	SitusAddress     *Address   `gorm:"foreignKey:SitusAddressID;constraint:OnDelete:SET NULL"`
	MailingAddressID *uuid.UUID `gorm:"type:uuid;index"`
	MailingAddress   *Address   `gorm:"foreignKey:MailingAddressID;constraint:OnDelete:SET NULL"`

	StateClass        *string `gorm:"type:varchar(20)"`
	PropertyType      *string `gorm:"type:varchar(50)"`
	SchoolDistrict    *string `gorm:"type:varchar(20)"`
	NeighborhoodCode  *string `gorm:"type:varchar(20)"`
	NeighborhoodGroup *string `gorm:"type:varchar(20)"`
	MarketArea1       *string `gorm:"column:market_area_1;type:varchar(20)"`
	MarketArea1Desc   *string `gorm:"column:market_area_1_desc;type:varchar(255)"`
	MarketArea2       *string `gorm:"column:market_area_2;type:varchar(20)"`
	MarketArea2Desc   *string `gorm:"column:market_area_2_desc;type:varchar(255)"`
	EconomicArea      *string `gorm:"type:varchar(20)"`

	LandAreaSqft *float64
	Acreage      *float64

	LegalDescription *string `gorm:"type:text"`
	YearImproved     *int
	YearAnnexed      *int

	// SourceAccountID keeps the legacy account for traceability.
	SourceAccountID *string `gorm:"type:varchar(50);index"`

	IsActive bool `gorm:"not null"`

	Valuations    []Valuation    `gorm:"constraint:OnDelete:CASCADE"`
	Structures    []Structure    `gorm:"constraint:OnDelete:CASCADE"`
	ExtraFeatures []ExtraFeature `gorm:"constraint:OnDelete:CASCADE"`
	Fixtures      []Fixture      `gorm:"constraint:OnDelete:CASCADE"`
}

// Valuation is the value record of a property for one tax year.
type Valuation struct {
	Base

	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_valuations_property_year,priority:1"`
	TaxYear    int       `gorm:"not null;uniqueIndex:idx_valuations_property_year,priority:2"`

	LandValue            decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	ImprovementValue     decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	ExtraFeaturesValue   decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	AgriculturalValue    decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	AssessedValue        decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	MarketValue          decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	AppraisedValue       decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	NewConstructionValue decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	ReplacementCostNew   decimal.NullDecimal `gorm:"type:numeric(14,2)"`

	IsNoticed   *bool
	IsProtested *bool
	IsCertified bool `gorm:"not null"`

	ValueStatus *string `gorm:"type:varchar(50)"`

	// DataSource is the provenance label, for example HCAD_MIGRATION.
	DataSource     *string `gorm:"type:varchar(50)"`
	SourceRecordID *string `gorm:"type:varchar(100)"`
}

// Structure is a building on a property. The sequence is unique within
// the property.
type Structure struct {
	Base

	PropertyID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_structures_property_sequence,priority:1"`
	StructureSequence int       `gorm:"not null;uniqueIndex:idx_structures_property_sequence,priority:2"`
	StructureName     *string   `gorm:"type:varchar(100)"`

	YearBuilt     *int
	EffectiveYear *int

	LivingAreaSqft decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	TotalAreaSqft  decimal.NullDecimal `gorm:"type:numeric(12,2)"`

	BuildingClass   *string `gorm:"type:varchar(20)"`
	QualityGrade    *string `gorm:"type:varchar(20)"`
	ConditionRating *string `gorm:"type:varchar(20)"`

	IsPrimary bool `gorm:"not null"`
	IsActive  bool `gorm:"not null"`

	// SourceBuildingID is the legacy building identifier.
	SourceBuildingID *string `gorm:"type:varchar(20)"`

	StructureElements []StructureElement `gorm:"constraint:OnDelete:CASCADE"`
	ExtraFeatures     []ExtraFeature     `gorm:"constraint:OnDelete:CASCADE"`
	Fixtures          []Fixture          `gorm:"constraint:OnDelete:CASCADE"`
}

// ElementType is a lookup of structural element codes.
type ElementType struct {
	Base

	JurisdictionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_element_types_jurisdiction_code,priority:1"`
	Code           string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_element_types_jurisdiction_code,priority:2"`
	Description    string    `gorm:"type:varchar(255);not null"`
	Category       *string   `gorm:"type:varchar(100)"`
	IsActive       bool      `gorm:"not null"`
}

// FeatureType is a lookup of extra feature codes.
type FeatureType struct {
	Base

	JurisdictionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feature_types_jurisdiction_code,priority:1"`
	Code           string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_feature_types_jurisdiction_code,priority:2"`
	Description    string    `gorm:"type:varchar(255);not null"`
	Category       *string   `gorm:"type:varchar(100)"`
	IsActive       bool      `gorm:"not null"`
}

// FixtureType is a lookup of fixture codes.
type FixtureType struct {
	Base

	JurisdictionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_fixture_types_jurisdiction_code,priority:1"`
	Code           string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_fixture_types_jurisdiction_code,priority:2"`
	Description    string    `gorm:"type:varchar(255);not null"`
	Category       *string   `gorm:"type:varchar(100)"`
	IsActive       bool      `gorm:"not null"`
}

// StructureElement is a typed component of a structure
// (foundation, roof, exterior wall and so on).
type StructureElement struct {
	Base

	StructureID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	ElementTypeID uuid.UUID    `gorm:"type:uuid;not null;index"`
	ElementType   *ElementType `gorm:"constraint:OnDelete:RESTRICT"`

	Quantity decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Unit     *string             `gorm:"type:varchar(20)"`
	Length   decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Width    decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Height   decimal.NullDecimal `gorm:"type:numeric(10,2)"`

	Grade            *string             `gorm:"type:varchar(20)"`
	ConditionCode    *string             `gorm:"type:varchar(20)"`
	ConditionPercent decimal.NullDecimal `gorm:"type:numeric(5,2)"`

	ActualYear    *int
	EffectiveYear *int

	Notes *string `gorm:"type:text"`

	SourceCode        *string `gorm:"type:varchar(50)"`
	SourceDescription *string `gorm:"type:varchar(255)"`
	SourceCategory    *string `gorm:"type:varchar(100)"`
}

// ExtraFeature is an improvement outside the main building, like a pool
// or a shed. StructureID is empty for property-level features.
type ExtraFeature struct {
	Base

	PropertyID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	StructureID   *uuid.UUID   `gorm:"type:uuid;index"`
	FeatureTypeID uuid.UUID    `gorm:"type:uuid;not null;index"`
	FeatureType   *FeatureType `gorm:"constraint:OnDelete:RESTRICT"`

	Quantity decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Unit     *string             `gorm:"type:varchar(20)"`
	Length   decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Width    decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Depth    decimal.NullDecimal `gorm:"type:numeric(10,2)"`

	Grade            *string             `gorm:"type:varchar(20)"`
	ConditionCode    *string             `gorm:"type:varchar(20)"`
	ConditionPercent decimal.NullDecimal `gorm:"type:numeric(5,2)"`

	UnitPrice         decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	AdjustedUnitPrice decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	DepreciatedValue  decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	AssessedValue     decimal.NullDecimal `gorm:"type:numeric(14,2)"`

	ActualYear      *int
	EffectiveYear   *int
	PercentComplete decimal.NullDecimal `gorm:"type:numeric(5,2)"`

	Notes *string `gorm:"type:text"`

	SourceCode        *string `gorm:"type:varchar(50)"`
	SourceDescription *string `gorm:"type:varchar(255)"`
}

// Fixture is a countable item inside a structure (plumbing, fireplaces).
type Fixture struct {
	Base

	PropertyID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	StructureID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	FixtureTypeID uuid.UUID    `gorm:"type:uuid;not null;index"`
	FixtureType   *FixtureType `gorm:"constraint:OnDelete:RESTRICT"`

	Units    decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	UnitType *string             `gorm:"type:varchar(20)"`

	Grade     *string `gorm:"type:varchar(20)"`
	Condition *string `gorm:"type:varchar(20)"`
	Brand     *string `gorm:"type:varchar(100)"`
	Model     *string `gorm:"type:varchar(100)"`
	Material  *string `gorm:"type:varchar(100)"`

	InstallationYear *int
	IsBuiltIn        bool `gorm:"not null"`

	Notes *string `gorm:"type:text"`

	SourceCode        *string `gorm:"type:varchar(50)"`
	SourceDescription *string `gorm:"type:varchar(255)"`
}

// TableName keeps canonical fixtures apart from the legacy
// fixtures table.
func (Fixture) TableName() string {
	return "structure_fixtures"
}

// CodeMap translates a jurisdiction's source code of a given type into a
// standard code, optionally bounded by effective tax years.
type CodeMap struct {
	Base

	JurisdictionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_code_maps_source,priority:1"`

	// CodeType groups codes, for example building_class, condition, grade.
	CodeType     string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_code_maps_source,priority:2;index:idx_code_maps_std,priority:1"`
	CodeCategory *string `gorm:"type:varchar(100)"`

	SourceCode        string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_code_maps_source,priority:3"`
	SourceDescription *string `gorm:"type:varchar(255)"`

	StdCode        string `gorm:"type:varchar(50);not null;index:idx_code_maps_std,priority:2"`
	StdDescription string `gorm:"type:varchar(255);not null"`

	MappingNotes    *string `gorm:"type:text"`
	ConfidenceLevel *string `gorm:"type:varchar(20)"`

	IsActive bool `gorm:"not null"`
	Version  int  `gorm:"not null"`

	// EffectiveFromYear and EffectiveToYear bound the mapping, empty
	// bounds are open.
	EffectiveFromYear *int
	EffectiveToYear   *int

	UsageCount        int     `gorm:"not null"`
	CreatedFromSource *string `gorm:"type:varchar(100)"`
}

// CoversYear reports whether the mapping is effective in the given year.
func (c *CodeMap) CoversYear(year int) bool {
	if c.EffectiveFromYear != nil && *c.EffectiveFromYear > year {
		return false
	}
	if c.EffectiveToYear != nil && *c.EffectiveToYear < year {
		return false
	}
	return true
}
