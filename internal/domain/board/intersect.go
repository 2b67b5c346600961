package board

// Segment intersection is done with integer cross products only. Every
// legal barrier has squared length 5, so no products here get anywhere
// near overflow.

// cross is the z-component of (b-a) × (c-a). Zero means a, b, c are
// collinear; the sign gives the turn direction.
func cross(a, b, c Peg) int {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// segmentsCross reports whether the segments a1–a2 and b1–b2 properly
// cross, i.e. intersect at a single interior point of both. Touching at
// an endpoint or lying on the same line does not count: barriers may
// radiate from a shared peg, and distinct collinear barriers of fixed
// length never overlap on this lattice.
func segmentsCross(a1, a2, b1, b2 Peg) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)

	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// blocked reports whether candidate may not coexist with existing:
// either it duplicates it exactly (endpoint order already canonical) or
// the two segments cross.
func blocked(candidate, existing Barrier) bool {
	if candidate == existing {
		return true
	}
	return segmentsCross(candidate.A, candidate.B, existing.A, existing.B)
}
