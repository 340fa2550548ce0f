// Package wkt is a thin, optional adapter between the well-known text
// format (POINT, LINESTRING) and package geo/polyline's in-memory types.
// Nothing in the core (geo, polyline, rtree, mapgraph, astar, hmm,
// viterbi) depends on this package; it exists purely for callers that want
// to serialize or ingest geometry as text, mirroring the teacher's
// converters package: a leaf format adapter with no dependents inside the
// library.
package wkt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arborix/mapmatch/geo"
	"github.com/arborix/mapmatch/polyline"
)

// Sentinel errors returned by Parse/ParsePoint.
var (
	// ErrEmptyInput indicates an empty or whitespace-only string was given.
	ErrEmptyInput = errors.New("wkt: empty input")

	// ErrInvalidFormat indicates the input did not match the expected
	// POINT/LINESTRING grammar.
	ErrInvalidFormat = errors.New("wkt: invalid format")
)

// DefaultTopology is the geo.Topology assigned to points parsed from WKT
// text, which carries no topology information of its own: map-matching
// inputs are overwhelmingly geodetic (longitude, latitude) pairs.
const DefaultTopology = geo.Geodetic

var (
	pointPattern      = regexp.MustCompile(`(?i)^\s*POINT\s*\(\s*([^()]*)\s*\)\s*$`)
	linestringPattern = regexp.MustCompile(`(?i)^\s*LINESTRING\s*\(\s*([^()]*)\s*\)\s*$`)
	coordSplit        = regexp.MustCompile(`\s*,\s*`)
)

// ParsePoint parses a "POINT (x y)" string into a geo.Point under
// DefaultTopology.
func ParsePoint(s string) (geo.Point, error) {
	if strings.TrimSpace(s) == "" {
		return geo.Point{}, ErrEmptyInput
	}

	m := pointPattern.FindStringSubmatch(s)
	if m == nil {
		return geo.Point{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	x, y, err := parseCoordPair(m[1])
	if err != nil {
		return geo.Point{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, s, err)
	}

	return geo.NewPoint(x, y, DefaultTopology), nil
}

// Parse parses a "LINESTRING (x y, x y, ...)" string into a
// polyline.Polyline under DefaultTopology.
func Parse(s string) (polyline.Polyline, error) {
	if strings.TrimSpace(s) == "" {
		return polyline.Polyline{}, ErrEmptyInput
	}

	m := linestringPattern.FindStringSubmatch(s)
	if m == nil {
		return polyline.Polyline{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	body := strings.TrimSpace(m[1])
	if body == "" {
		return polyline.New(nil, 0), nil
	}

	coordStrs := coordSplit.Split(body, -1)
	points := make([]geo.Point, 0, len(coordStrs))
	for _, cs := range coordStrs {
		x, y, err := parseCoordPair(cs)
		if err != nil {
			return polyline.Polyline{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, s, err)
		}
		points = append(points, geo.NewPoint(x, y, DefaultTopology))
	}

	return polyline.New(points, 0), nil
}

// parseCoordPair parses "x y" into two float64s.
func parseCoordPair(s string) (x, y float64, err error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected \"x y\", got %q", s)
	}

	x, err = strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, err
	}
	y, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, err
	}

	return x, y, nil
}

// FormatPoint renders p as "POINT (x y)".
func FormatPoint(p geo.Point) string {
	return fmt.Sprintf("POINT (%s %s)", formatFloat(p.X), formatFloat(p.Y))
}

// Format renders pl as "LINESTRING (x y, x y, ...)". An empty Polyline
// renders as "LINESTRING EMPTY".
func Format(pl polyline.Polyline) string {
	if pl.IsEmpty() {
		return "LINESTRING EMPTY"
	}

	parts := make([]string, 0, pl.Len())
	for i := 0; i < pl.Len(); i++ {
		p := pl.Point(i)
		parts = append(parts, formatFloat(p.X)+" "+formatFloat(p.Y))
	}

	return "LINESTRING (" + strings.Join(parts, ", ") + ")"
}

// formatFloat renders a coordinate with enough precision to round-trip
// survey-grade geodetic inputs (1e-9 degrees is sub-millimeter).
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
