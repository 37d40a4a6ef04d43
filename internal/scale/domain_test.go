package scale

import (
	"math/rand/v2"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomain(t *testing.T) {
	d, err := NewDomain([]float64{10, 50, 26, 18})
	require.NoError(t, err)

	assert.Equal(t, 10.0, d.Min)
	assert.Equal(t, 50.0, d.Max)
	assert.Equal(t, 5.0, d.Step)
	assert.Equal(t, []float64{15, 20, 25, 30, 35, 40, 45, 50}, d.Boundaries)
	assert.False(t, d.Degenerate())
}

func TestNewDomain_Empty(t *testing.T) {
	_, err := NewDomain(nil)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrEmptyDomain))
}

func TestNewDomain_Degenerate(t *testing.T) {
	d, err := NewDomain([]float64{12.5, 12.5, 12.5})
	require.NoError(t, err)

	assert.True(t, d.Degenerate())
	require.Len(t, d.Boundaries, Steps)
	for _, b := range d.Boundaries {
		assert.Equal(t, 12.5, b)
	}

	th, err := NewThreshold(d, Greens9)
	require.NoError(t, err)
	// one effective bin: every observed value lands in the same color
	assert.Equal(t, Greens9[8], th.ColorOf(12.5))
	assert.Equal(t, Greens9[0], th.ColorOf(12.4))
}

func TestDomain_BoundaryProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := range 200 {
		n := 1 + rng.IntN(300)
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.Float64() * 100
		}

		d, err := NewDomain(values)
		require.NoError(t, err)
		require.Len(t, d.Boundaries, Steps, "trial %d", trial)

		prev := d.Min
		for _, b := range d.Boundaries {
			assert.GreaterOrEqual(t, b, d.Min)
			assert.LessOrEqual(t, b, d.Max)
			assert.GreaterOrEqual(t, b, prev, "boundaries must not decrease")
			prev = b
		}
	}
}

func TestLegendValues(t *testing.T) {
	d, err := NewDomain([]float64{10, 50})
	require.NoError(t, err)

	got := d.LegendValues()
	require.Len(t, got, Steps+2)
	assert.Equal(t, 0.0, got[0])
	assert.InDelta(t, 0.15, got[1], 1e-12)
	assert.InDelta(t, 0.50, got[8], 1e-12)
	assert.InDelta(t, 0.50, got[9], 1e-12)
}

func TestThreshold_ColorOf(t *testing.T) {
	d, err := NewDomain([]float64{10, 50})
	require.NoError(t, err)
	th, err := NewThreshold(d, Greens9)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value float64
		want  int
	}{
		{"below min", 2, 0},
		{"min", 10, 0},
		{"just under first boundary", 14.999, 0},
		{"at first boundary", 15, 1},
		{"between", 27, 3},
		{"at seventh boundary", 45, 7},
		{"max", 50, 8},
		{"above max", 80, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, th.Bin(tt.value))
			assert.Equal(t, Greens9[tt.want], th.ColorOf(tt.value))
		})
	}
}

func TestThreshold_Monotonic(t *testing.T) {
	d, err := NewDomain([]float64{2.6, 75.1})
	require.NoError(t, err)
	th, err := NewThreshold(d, Greens9)
	require.NoError(t, err)

	assert.Equal(t, Greens9[0], th.ColorOf(d.Min))
	assert.Equal(t, Greens9[len(Greens9)-1], th.ColorOf(d.Max))

	prev := 0
	for v := 0.0; v <= 100; v += 0.05 {
		bin := th.Bin(v)
		assert.GreaterOrEqual(t, bin, prev)
		prev = bin
	}
}

func TestNewThreshold_WrongPaletteSize(t *testing.T) {
	d, err := NewDomain([]float64{1, 2})
	require.NoError(t, err)

	_, err = NewThreshold(d, Greens9[:5])
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrPaletteSize))
}

func TestDomain_BinRange(t *testing.T) {
	d, err := NewDomain([]float64{0, 80})
	require.NoError(t, err)

	lo, hi := d.BinRange(0)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)

	lo, hi = d.BinRange(3)
	assert.Equal(t, 30.0, lo)
	assert.Equal(t, 40.0, hi)

	lo, hi = d.BinRange(Steps)
	assert.Equal(t, 80.0, lo)
	assert.Equal(t, 80.0, hi)
}
