package schema

import (
	"database/sql"
	"slices"
)

// Legacy staging tables mirror the flat county export. Every value is text;
// conversion into typed values happens only while migrating into the
// canonical model.
const (
	LegacyPropertyTable          = "property_data"
	LegacyStructuralElementTable = "structural_elements"
	LegacyExtraFeatureTable      = "extra_features_detail"
	LegacyFixtureTable           = "fixtures"
)

// LegacyProperty is a row of the legacy property_data table.
type LegacyProperty struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Acct string `gorm:"column:acct;type:text;not null;uniqueIndex"`

	StrNum    sql.NullString `gorm:"column:str_num;type:text"`
	Str       sql.NullString `gorm:"column:str;type:text"`
	StrSfx    sql.NullString `gorm:"column:str_sfx;type:text"`
	StrSfxDir sql.NullString `gorm:"column:str_sfx_dir;type:text"`
	SiteAddr1 sql.NullString `gorm:"column:site_addr_1;type:text"`
	SiteAddr2 sql.NullString `gorm:"column:site_addr_2;type:text"`
	SiteAddr3 sql.NullString `gorm:"column:site_addr_3;type:text"`

	StateClass       sql.NullString `gorm:"column:state_class;type:text"`
	SchoolDist       sql.NullString `gorm:"column:school_dist;type:text"`
	NeighborhoodCode sql.NullString `gorm:"column:neighborhood_code;type:text"`
	NeighborhoodGrp  sql.NullString `gorm:"column:neighborhood_grp;type:text"`
	MarketArea1      sql.NullString `gorm:"column:market_area_1;type:text"`
	MarketArea1Dscr  sql.NullString `gorm:"column:market_area_1_dscr;type:text"`
	MarketArea2      sql.NullString `gorm:"column:market_area_2;type:text"`
	MarketArea2Dscr  sql.NullString `gorm:"column:market_area_2_dscr;type:text"`
	EconArea         sql.NullString `gorm:"column:econ_area;type:text"`
	EconBldClass     sql.NullString `gorm:"column:econ_bld_class;type:text"`

	YrImpr    sql.NullString `gorm:"column:yr_impr;type:text"`
	YrAnnexed sql.NullString `gorm:"column:yr_annexed;type:text"`
	BldAr     sql.NullString `gorm:"column:bld_ar;type:text"`
	LandAr    sql.NullString `gorm:"column:land_ar;type:text"`
	Acreage   sql.NullString `gorm:"column:acreage;type:text"`

	LandVal            sql.NullString `gorm:"column:land_val;type:text"`
	BldVal             sql.NullString `gorm:"column:bld_val;type:text"`
	XFeaturesVal       sql.NullString `gorm:"column:x_features_val;type:text"`
	AgVal              sql.NullString `gorm:"column:ag_val;type:text"`
	AssessedVal        sql.NullString `gorm:"column:assessed_val;type:text"`
	TotApprVal         sql.NullString `gorm:"column:tot_appr_val;type:text"`
	TotMktVal          sql.NullString `gorm:"column:tot_mkt_val;type:text"`
	NewConstructionVal sql.NullString `gorm:"column:new_construction_val;type:text"`
	TotRcnVal          sql.NullString `gorm:"column:tot_rcn_val;type:text"`

	PriorLandVal      sql.NullString `gorm:"column:prior_land_val;type:text"`
	PriorBldVal       sql.NullString `gorm:"column:prior_bld_val;type:text"`
	PriorXFeaturesVal sql.NullString `gorm:"column:prior_x_features_val;type:text"`
	PriorAgVal        sql.NullString `gorm:"column:prior_ag_val;type:text"`
	PriorTotApprVal   sql.NullString `gorm:"column:prior_tot_appr_val;type:text"`
	PriorTotMktVal    sql.NullString `gorm:"column:prior_tot_mkt_val;type:text"`

	ValueStatus sql.NullString `gorm:"column:value_status;type:text"`
	Noticed     sql.NullString `gorm:"column:noticed;type:text"`
	Protested   sql.NullString `gorm:"column:protested;type:text"`
	Lgl1        sql.NullString `gorm:"column:lgl_1;type:text"`
	Jurs        sql.NullString `gorm:"column:jurs;type:text"`
}

func (LegacyProperty) TableName() string { return LegacyPropertyTable }

// LegacyStructuralElement is a row of the legacy structural_elements table.
// BldNum identifies the building within the account.
type LegacyStructuralElement struct {
	ID           uint64         `gorm:"primaryKey;autoIncrement"`
	Acct         string         `gorm:"column:acct;type:text;not null;index"`
	BldNum       sql.NullString `gorm:"column:bld_num;type:text"`
	Code         sql.NullString `gorm:"column:code;type:text"`
	Adj          sql.NullString `gorm:"column:adj;type:text"`
	Type         sql.NullString `gorm:"column:type;type:text"`
	TypeDscr     sql.NullString `gorm:"column:type_dscr;type:text"`
	CategoryDscr sql.NullString `gorm:"column:category_dscr;type:text"`
	DorCd        sql.NullString `gorm:"column:dor_cd;type:text"`
}

func (LegacyStructuralElement) TableName() string { return LegacyStructuralElementTable }

// LegacyExtraFeature is a row of the legacy extra_features_detail table.
// Rows without BldNum describe the whole property.
type LegacyExtraFeature struct {
	ID           uint64         `gorm:"primaryKey;autoIncrement"`
	Acct         string         `gorm:"column:acct;type:text;not null;index"`
	Cd           sql.NullString `gorm:"column:cd;type:text"`
	Dscr         sql.NullString `gorm:"column:dscr;type:text"`
	Grade        sql.NullString `gorm:"column:grade;type:text"`
	CondCd       sql.NullString `gorm:"column:cond_cd;type:text"`
	BldNum       sql.NullString `gorm:"column:bld_num;type:text"`
	Length       sql.NullString `gorm:"column:length;type:text"`
	Width        sql.NullString `gorm:"column:width;type:text"`
	Units        sql.NullString `gorm:"column:units;type:text"`
	UnitPrice    sql.NullString `gorm:"column:unit_price;type:text"`
	AdjUnitPrice sql.NullString `gorm:"column:adj_unit_price;type:text"`
	PctComp      sql.NullString `gorm:"column:pct_comp;type:text"`
	ActYr        sql.NullString `gorm:"column:act_yr;type:text"`
	EffYr        sql.NullString `gorm:"column:eff_yr;type:text"`
	RollYr       sql.NullString `gorm:"column:roll_yr;type:text"`
	Dt           sql.NullString `gorm:"column:dt;type:text"`
	PctCond      sql.NullString `gorm:"column:pct_cond;type:text"`
	DprVal       sql.NullString `gorm:"column:dpr_val;type:text"`
	Note         sql.NullString `gorm:"column:note;type:text"`
	AsdVal       sql.NullString `gorm:"column:asd_val;type:text"`
}

func (LegacyExtraFeature) TableName() string { return LegacyExtraFeatureTable }

// LegacyFixture is a row of the legacy fixtures table.
type LegacyFixture struct {
	ID       uint64         `gorm:"primaryKey;autoIncrement"`
	Acct     string         `gorm:"column:acct;type:text;not null;index"`
	BldNum   sql.NullString `gorm:"column:bld_num;type:text"`
	Type     sql.NullString `gorm:"column:type;type:text"`
	TypeDscr sql.NullString `gorm:"column:type_dscr;type:text"`
	Units    sql.NullString `gorm:"column:units;type:text"`
}

func (LegacyFixture) TableName() string { return LegacyFixtureTable }

// legacyColumns lists loadable columns of every legacy table in file order.
var legacyColumns = map[string][]string{
	LegacyPropertyTable: {
		"acct", "str_num", "str", "str_sfx", "str_sfx_dir",
		"site_addr_1", "site_addr_2", "site_addr_3",
		"state_class", "school_dist", "neighborhood_code", "neighborhood_grp",
		"market_area_1", "market_area_1_dscr",
		"market_area_2", "market_area_2_dscr",
		"econ_area", "econ_bld_class",
		"yr_impr", "yr_annexed", "bld_ar", "land_ar", "acreage",
		"land_val", "bld_val", "x_features_val", "ag_val", "assessed_val",
		"tot_appr_val", "tot_mkt_val", "new_construction_val", "tot_rcn_val",
		"prior_land_val", "prior_bld_val", "prior_x_features_val",
		"prior_ag_val", "prior_tot_appr_val", "prior_tot_mkt_val",
		"value_status", "noticed", "protested", "lgl_1", "jurs",
	},
	LegacyStructuralElementTable: {
		"acct", "bld_num", "code", "adj", "type", "type_dscr",
		"category_dscr", "dor_cd",
	},
	LegacyExtraFeatureTable: {
		"acct", "cd", "dscr", "grade", "cond_cd", "bld_num", "length",
		"width", "units", "unit_price", "adj_unit_price", "pct_comp",
		"act_yr", "eff_yr", "roll_yr", "dt", "pct_cond", "dpr_val",
		"note", "asd_val",
	},
	LegacyFixtureTable: {
		"acct", "bld_num", "type", "type_dscr", "units",
	},
}

// LegacyTables returns names of the legacy staging tables.
func LegacyTables() []string {
	return []string{
		LegacyPropertyTable,
		LegacyStructuralElementTable,
		LegacyExtraFeatureTable,
		LegacyFixtureTable,
	}
}

// LegacyColumns returns the loadable columns of a legacy table, or nil if
// the table is unknown.
func LegacyColumns(table string) []string {
	return slices.Clone(legacyColumns[table])
}
