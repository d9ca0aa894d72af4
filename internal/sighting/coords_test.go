package sighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perchlog/perchlog/internal/errors"
)

func TestParseCoordinate(t *testing.T) {
	v, err := ParseCoordinate("61.4978")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.InDelta(t, 61.4978, *v, 1e-9)

	v, err = ParseCoordinate("  ")
	require.NoError(t, err)
	assert.Nil(t, v, "blank input should normalize to nil, not zero")

	v, err = ParseCoordinate("")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = ParseCoordinate("north")
	require.Error(t, err)
	var enhanced *errors.EnhancedError
	require.ErrorAs(t, err, &enhanced)
	assert.Equal(t, string(errors.CategoryValidation), enhanced.GetCategory())
}

func TestNormalizeCoordinates(t *testing.T) {
	lat, lon, err := NormalizeCoordinates("45.5", "-122.6")
	require.NoError(t, err)
	require.NotNil(t, lat)
	require.NotNil(t, lon)
	assert.InDelta(t, 45.5, *lat, 1e-9)
	assert.InDelta(t, -122.6, *lon, 1e-9)

	lat, lon, err = NormalizeCoordinates("", "")
	require.NoError(t, err)
	assert.Nil(t, lat)
	assert.Nil(t, lon)

	_, _, err = NormalizeCoordinates("45.5", "west")
	assert.Error(t, err)
}
