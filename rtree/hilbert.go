// File: hilbert.go
// Role: Bit-interleaved Hilbert curve encoding used to order items before
// bulk loading. Produces a 32-bit code for a point on a 2^L x 2^L grid.
package rtree

import "github.com/arborix/mapmatch/region"

// hilbertD returns the Hilbert distance of grid cell (x, y) on a side-n
// (n = 2^level) square, using the classic bit-interleaved xy2d
// transform. n must be a power of two; x and y must lie in [0, n).
func hilbertD(n, x, y uint32) uint32 {
	var d uint32
	for s := n / 2; s > 0; s /= 2 {
		var rx, ry uint32
		if x&s > 0 {
			rx = 1
		}
		if y&s > 0 {
			ry = 1
		}
		d += s * s * ((3 * rx) ^ ry)
		x, y = hilbertRotate(n, x, y, rx, ry)
	}

	return d
}

// hilbertRotate performs the quadrant rotation/reflection step of the
// Hilbert xy2d transform.
func hilbertRotate(n, x, y, rx, ry uint32) (uint32, uint32) {
	if ry == 0 {
		if rx == 1 {
			x = n - 1 - x
			y = n - 1 - y
		}
		x, y = y, x
	}

	return x, y
}

// hilbertCode maps the center of r onto a 2^level x 2^level grid scaled to
// extent, and returns its Hilbert distance. A degenerate (zero-width or
// zero-height) extent maps every item to grid cell 0 on that axis.
//
// Fixes the source's apparent bug of seeding the Y grid coordinate from the
// region's X extent (minX) instead of its own minY extent (see DESIGN.md).
func hilbertCode(r region.Region, extent region.Region, level int) uint32 {
	n := uint32(1) << uint(level)

	cx := r.CenterX()
	cy := r.CenterY()

	gx := scaleToGrid(cx, extent.MinX, extent.Width(), n)
	gy := scaleToGrid(cy, extent.MinY, extent.Height(), n)

	return hilbertD(n, gx, gy)
}

// scaleToGrid maps v from [origin, origin+span] onto [0, n-1], clamping to
// the grid bounds. A zero span maps every value to grid cell 0.
func scaleToGrid(v, origin, span float64, n uint32) uint32 {
	if span <= 0 {
		return 0
	}
	t := (v - origin) / span
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	g := uint32(t * float64(n-1))
	if g >= n {
		g = n - 1
	}

	return g
}
