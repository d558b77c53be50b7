package lifecycle_test

import (
	"testing"

	"github.com/ptnexus/apdb/internal/iobootstrap"
	"github.com/ptnexus/apdb/internal/iocodemap"
	"github.com/ptnexus/apdb/internal/iodb"
	"github.com/ptnexus/apdb/internal/ioload"
	"github.com/ptnexus/apdb/internal/iomigrate"
	"github.com/ptnexus/apdb/internal/ioschema"
	"github.com/ptnexus/apdb/internal/iosources"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestContracts ensures every lifecycle interface has an implementation
// wired to the same operator.
func TestContracts(t *testing.T) {
	cfg := config.New()
	op := iodb.NewPgxOperator()

	var sm lifecycle.SchemaManager = ioschema.NewManager(op)
	var l lifecycle.Loader = ioload.New(cfg, op, iosources.New(cfg))
	var b lifecycle.Bootstrapper = iobootstrap.New(cfg, op)
	var m lifecycle.Migrator = iomigrate.New(cfg, op, b)
	var cm lifecycle.CodeMapper = iocodemap.New(nil)

	assert.NotNil(t, sm)
	assert.NotNil(t, l)
	assert.NotNil(t, cm)
	assert.Equal(t, lifecycle.NotStarted, m.State())
}

func TestCounts(t *testing.T) {
	c := lifecycle.Counts{lifecycle.CountProperties: 2}
	c.Add(lifecycle.Counts{
		lifecycle.CountProperties: 3,
		lifecycle.CountValuations: 4,
	})
	assert.Equal(t, 5, c[lifecycle.CountProperties])
	assert.Equal(t, 4, c[lifecycle.CountValuations])
	assert.Equal(t,
		[]string{lifecycle.CountProperties, lifecycle.CountValuations},
		c.Keys(),
	)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state lifecycle.State
		res   string
	}{
		{lifecycle.NotStarted, "not started"},
		{lifecycle.Bootstrapping, "bootstrapping"},
		{lifecycle.Migrating, "migrating"},
		{lifecycle.Completed, "completed"},
		{lifecycle.Failed, "failed"},
		{lifecycle.State(42), "unknown"},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, v.state.String())
	}
}
