package schedule

// HasOverlap reports whether the half-open minute intervals [aStart, aEnd)
// and [bStart, bEnd) intersect. Touching intervals do not overlap, so
// back-to-back meetings are allowed.
func HasOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
