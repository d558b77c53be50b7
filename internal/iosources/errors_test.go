package iosources_test

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/internal/iosources"
	"github.com/ptnexus/apdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcesConfigError(t *testing.T) {
	path := "/test/sources.yaml"
	originalErr := errors.New("file not found")

	err := iosources.SourcesConfigError(path, originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.LoadSourcesConfigError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Equal(t, []any{path}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
