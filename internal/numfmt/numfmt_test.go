package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		spec  string
		value float64
		want  string
	}{
		{".1%", 0.201, "20.1%"},
		{".1%", 0.2, "20.0%"},
		{".1%", 0, "0.0%"},
		{".1%", 0.751, "75.1%"},
		{".0%", 0.126, "13%"},
		{".2f", 3.14159, "3.14"},
		{",.2f", 1234.5, "1,234.50"},
		{",.0f", 1234567, "1,234,567"},
		{",d", 1234567.4, "1,234,567"},
		{"d", 41.6, "42"},
		{".2f", -1.5, "-1.50"},
		{"+.1f", 2, "+2.0"},
		{"+.1f", -2, "-2.0"},
		{" .1f", 2, " 2.0"},
		{".1f", -0.01, "0.0"},
		{".2e", 1500, "1.50e+3"},
		{".1e", 0.00012, "1.2e-4"},
		{"", 0.25, "0.25"},
		{".3", 3.14159, "3.14"},
		{"f", 1.5, "1.500000"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Format(tt.spec, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, spec := range []string{"%.1", "abc", ".x%", "1.2f", ".99f"} {
		t.Run(spec, func(t *testing.T) {
			_, err := Parse(spec)
			assert.Error(t, err)
		})
	}
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, ".1%", MustParse(".1%").String())
	assert.Panics(t, func() { MustParse("nope") })
}

func TestFormatSpecialValues(t *testing.T) {
	f := MustParse(".1f")
	assert.Equal(t, "NaN", f.Format(math.NaN()))
	assert.Equal(t, "Infinity", f.Format(math.Inf(1)))
	assert.Equal(t, "-Infinity", f.Format(math.Inf(-1)))
}
