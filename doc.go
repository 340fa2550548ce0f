// Package mapmatch is a map-matching library: it turns a noisy sequence of
// GPS observations into the most likely path through a road-like graph,
// using a hidden Markov model decoded by the Viterbi algorithm.
//
// The library is organized as a set of focused subpackages:
//
//	geo/     — geodetic (WGS84/Vincenty) and planar point/distance/bearing primitives
//	polyline/ — immutable point sequences: bounding box, projection, cut, concatenation
//	region/  — axis-aligned bounding boxes
//	rtree/   — a bulk-built, Hilbert-curve-packed R-tree for edge proximity queries
//	mapgraph/ — a near-line-merge directed multigraph built from road polylines
//	astar/   — single-source shortest path with a pluggable heuristic
//	hmm/     — initial/emission/transition probability calculators
//	viterbi/ — the trellis decoder that ties the above together into FindPath
//	wkt/     — an optional well-known-text adapter for geometry I/O
//
// A typical caller builds a mapgraph.Graph from polylines, then calls
// viterbi.FindPath with a sequence of timestamped observations to recover
// the matched edge sequence:
//
//	go get github.com/arborix/mapmatch
package mapmatch
