// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

// DefaultDecimationThreshold is the minimum distance in pixels between two
// retained freehand points.
const DefaultDecimationThreshold = 10

// Freehand expands each consecutive point pair into an independent thick
// line quad. Segments are never merged or smoothed.
func Freehand(points []Point, width float32) []Point {
	if len(points) < 2 || width <= 0 {
		return nil
	}
	out := make([]Point, 0, (len(points)-1)*6)
	for i := 1; i < len(points); i++ {
		out = append(out, ThickLine(points[i-1], points[i], width)...)
	}
	return out
}

// Accumulator collects freehand pointer samples and drops samples that are
// too close to the last retained point.
//
// The most recent dropped sample is remembered as the tail so the caller can
// connect the path to where the pointer actually ended.
//
// Accumulator is not safe for concurrent use.
type Accumulator struct {
	threshold float32
	points    []Point
	tail      Point
	hasTail   bool
}

// NewAccumulator creates an empty accumulator. A non-positive threshold only
// drops exact duplicates.
func NewAccumulator(threshold float32) *Accumulator {
	return &Accumulator{
		threshold: max(threshold, 0),
		points:    make([]Point, 0, 64),
	}
}

// Threshold returns the decimation threshold.
func (a *Accumulator) Threshold() float32 {
	return a.threshold
}

// Reset discards all points but keeps the allocated storage.
func (a *Accumulator) Reset() {
	a.points = a.points[:0]
	a.hasTail = false
}

// Append adds p to the path. The first point is always retained; later
// points are retained only when farther than the threshold from the last
// retained point. Append reports whether p was retained.
func (a *Accumulator) Append(p Point) bool {
	if n := len(a.points); n > 0 {
		last := a.points[n-1]
		if last == p || last.Distance(p) <= a.threshold {
			a.tail = p
			a.hasTail = last != p
			return false
		}
	}
	a.points = append(a.points, p)
	a.hasTail = false
	return true
}

// Len returns the number of retained points.
func (a *Accumulator) Len() int {
	return len(a.points)
}

// Points returns the retained points. The slice aliases the accumulator's
// storage and is only valid until the next Append or Reset.
func (a *Accumulator) Points() []Point {
	return a.points
}

// Last returns the last retained point.
func (a *Accumulator) Last() (Point, bool) {
	if len(a.points) == 0 {
		return Point{}, false
	}
	return a.points[len(a.points)-1], true
}

// Tail returns the most recent sample if it was dropped by decimation and
// differs from the last retained point.
func (a *Accumulator) Tail() (Point, bool) {
	return a.tail, a.hasTail
}
