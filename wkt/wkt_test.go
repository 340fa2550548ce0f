package wkt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/polyline"
	"github.com/arborix/mapmatch/wkt"
)

// TestParsePoint covers basic POINT parsing.
func TestParsePoint(t *testing.T) {
	p, err := wkt.ParsePoint("POINT (12.238140517 45.658974159)")
	require.NoError(t, err)
	assert.InDelta(t, 12.238140517, p.X, 1e-9)
	assert.InDelta(t, 45.658974159, p.Y, 1e-9)
	assert.Equal(t, geo.Geodetic, p.Topology)
}

// TestParsePoint_CaseInsensitiveAndWhitespace covers grammar tolerance.
func TestParsePoint_CaseInsensitiveAndWhitespace(t *testing.T) {
	p, err := wkt.ParsePoint("  point(  1   2  )  ")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p.X, 1e-9)
	assert.InDelta(t, 2.0, p.Y, 1e-9)
}

// TestParsePoint_InvalidFormat covers the error contract.
func TestParsePoint_InvalidFormat(t *testing.T) {
	_, err := wkt.ParsePoint("NOT A POINT")
	assert.ErrorIs(t, err, wkt.ErrInvalidFormat)

	_, err = wkt.ParsePoint("")
	assert.ErrorIs(t, err, wkt.ErrEmptyInput)
}

// TestRoundTrip covers testable property #8: parse(format(pl)) == pl for a
// non-degenerate polyline.
func TestRoundTrip(t *testing.T) {
	original := polyline.New([]geo.Point{
		geo.NewPoint(121.058805, 14.552797, geo.Geodetic),
		geo.NewPoint(120.994260, 14.593999, geo.Geodetic),
		geo.NewPoint(120.9, 14.6, geo.Geodetic),
	}, 0)

	text := wkt.Format(original)
	parsed, err := wkt.Parse(text)
	require.NoError(t, err)

	require.Equal(t, original.Len(), parsed.Len())
	for i := 0; i < original.Len(); i++ {
		assert.True(t, original.Point(i).Equal(parsed.Point(i), 1e-9))
	}
}

// TestFormat_Empty covers the WKT EMPTY sentinel for a zero-point Polyline.
func TestFormat_Empty(t *testing.T) {
	var pl polyline.Polyline
	assert.Equal(t, "LINESTRING EMPTY", wkt.Format(pl))
}

// TestParse_Linestring covers basic LINESTRING parsing.
func TestParse_Linestring(t *testing.T) {
	pl, err := wkt.Parse("LINESTRING (0 0, 10 0, 10 10)")
	require.NoError(t, err)
	require.Equal(t, 3, pl.Len())
	assert.InDelta(t, 10, pl.Point(2).X, 1e-9)
	assert.InDelta(t, 10, pl.Point(2).Y, 1e-9)
}
