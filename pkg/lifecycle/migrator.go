package lifecycle

import (
	"context"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Counter names reported by the migration.
const (
	CountJurisdictions     = "jurisdictions"
	CountElementTypes      = "element_types"
	CountFeatureTypes      = "feature_types"
	CountFixtureTypes      = "fixture_types"
	CountCodeMaps          = "code_maps"
	CountAddresses         = "addresses"
	CountProperties        = "properties"
	CountValuations        = "valuations"
	CountStructures        = "structures"
	CountStructureElements = "structure_elements"
	CountExtraFeatures     = "extra_features"
	CountFixtures          = "fixtures"

	CountDroppedElements = "dropped_structure_elements"
	CountDroppedFeatures = "dropped_extra_features"
	CountDroppedFixtures = "dropped_fixtures"
	CountFailedRecords   = "failed_records"
	CountDuplicates      = "duplicate_records"
)

// Counts maps an entity type to the number of entities created.
type Counts map[string]int

// Add merges other into c.
func (c Counts) Add(other Counts) {
	for k, v := range other {
		c[k] += v
	}
}

// Keys returns counter names in alphabetical order.
func (c Counts) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}

// State is a stage of a migration run.
type State int

const (
	NotStarted State = iota
	Bootstrapping
	Migrating
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Bootstrapping:
		return "bootstrapping"
	case Migrating:
		return "migrating"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reference holds identifiers of reference data the migration links to.
type Reference struct {
	// JurisdictionID is the jurisdiction all migrated entities belong to.
	JurisdictionID uuid.UUID

	// ElementTypes, FeatureTypes and FixtureTypes map a source code to
	// the ID of its lookup row.
	ElementTypes map[string]uuid.UUID
	FeatureTypes map[string]uuid.UUID
	FixtureTypes map[string]uuid.UUID

	// Counts has the number of reference entities created.
	// It is empty when reference data was reused.
	Counts Counts
}

// Bootstrapper creates the reference data a migration depends on.
type Bootstrapper interface {
	// Bootstrap creates the jurisdiction, lookup types and seed code maps
	// in one transaction. It fails if they already exist.
	Bootstrap(ctx context.Context) (*Reference, error)

	// Existing loads reference data created by an earlier Bootstrap.
	Existing(ctx context.Context) (*Reference, error)
}

// Migrator converts all legacy records into the canonical model.
type Migrator interface {
	// MigrateAll bootstraps reference data and migrates legacy records
	// window by window. It returns counters only if the whole run
	// succeeded.
	MigrateAll(ctx context.Context) (Counts, error)

	// State reports the current stage of the run.
	State() State
}
