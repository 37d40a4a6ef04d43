// Package scale builds the threshold color scale that bins county values.
package scale

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
)

// Steps is the number of equal-width steps the observed range is split into.
const Steps = 8

// ErrEmptyDomain is returned when there are no values to build a domain from.
var ErrEmptyDomain = eris.New("scale: no values")

// Domain is the observed value range and its bin boundaries.
type Domain struct {
	Min        float64
	Max        float64
	Step       float64
	Boundaries []float64 // Steps values, non-decreasing, within [Min, Max]
}

// NewDomain computes min and max over values and splits the range into Steps
// equal-width steps. Boundary k (1-based) is min + k*step; the last boundary
// is pinned to max so rounding cannot push it out of range. When min equals
// max every boundary collapses onto min.
func NewDomain(values []float64) (*Domain, error) {
	if len(values) == 0 {
		return nil, ErrEmptyDomain
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			return nil, eris.New("scale: NaN value")
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	step := (hi - lo) / Steps
	bounds := make([]float64, Steps)
	for k := 1; k <= Steps; k++ {
		bounds[k-1] = math.Min(lo+float64(k)*step, hi)
	}
	bounds[Steps-1] = hi

	return &Domain{Min: lo, Max: hi, Step: step, Boundaries: bounds}, nil
}

// Degenerate reports whether all observed values were equal.
func (d *Domain) Degenerate() bool {
	return d.Step == 0
}

// LegendValues returns the Steps+2 label values for the legend: 0, each
// boundary, and max, all divided by 100 so they read as fractions of one.
func (d *Domain) LegendValues() []float64 {
	out := make([]float64, 0, Steps+2)
	out = append(out, 0)
	for _, b := range d.Boundaries {
		out = append(out, b/100)
	}
	out = append(out, d.Max/100)
	return out
}

// BinRange returns the value range covered by bin i. The first bin starts at
// Min and the last ends at Max.
func (d *Domain) BinRange(i int) (float64, float64) {
	lo := d.Min
	if i > 0 {
		lo = d.Boundaries[i-1]
	}
	hi := d.Max
	if i < len(d.Boundaries) {
		hi = d.Boundaries[i]
	}
	return lo, hi
}

// Threshold maps values to colors by the number of boundaries at or below
// the value.
type Threshold struct {
	Boundaries []float64
	Colors     []string
}

// NewThreshold pairs the domain boundaries with a palette of Bins colors.
func NewThreshold(d *Domain, colors []string) (*Threshold, error) {
	if len(colors) != len(d.Boundaries)+1 {
		return nil, eris.Wrapf(ErrPaletteSize, "got %d colors for %d boundaries", len(colors), len(d.Boundaries))
	}
	return &Threshold{Boundaries: d.Boundaries, Colors: colors}, nil
}

// Bin returns the color index for v: 0 below the first boundary, k for
// values in [b_k, b_k+1), and len(Boundaries) at or above the last one.
func (t *Threshold) Bin(v float64) int {
	return sort.Search(len(t.Boundaries), func(i int) bool {
		return t.Boundaries[i] > v
	})
}

// ColorOf returns the color for v.
func (t *Threshold) ColorOf(v float64) string {
	return t.Colors[t.Bin(v)]
}
