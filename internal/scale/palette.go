package scale

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Bins is the number of colors a palette needs: 8 boundaries make 9 bins.
const Bins = Steps + 1

// ErrPaletteSize is returned for palettes that do not hold exactly Bins colors.
var ErrPaletteSize = eris.New("scale: palette must have 9 colors")

// Greens9 is the nine-step sequential greens scheme, light to dark.
var Greens9 = []string{
	"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476",
	"#41ab5d", "#238b45", "#006d2c", "#00441b",
}

// Blues9 is the nine-step sequential blues scheme, light to dark.
var Blues9 = []string{
	"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6",
	"#4292c6", "#2171b5", "#08519c", "#08306b",
}

// Purples9 is the nine-step sequential purples scheme, light to dark.
var Purples9 = []string{
	"#fcfbfd", "#efedf5", "#dadaeb", "#bcbddc", "#9e9ac8",
	"#807dba", "#6a51a3", "#54278f", "#3f007d",
}

// Palettes is a set of named color palettes.
type Palettes map[string][]string

// BuiltinPalettes returns the palettes available without a palette file.
func BuiltinPalettes() Palettes {
	return Palettes{
		"greens":  Greens9,
		"blues":   Blues9,
		"purples": Purples9,
	}
}

// LoadPalettes reads named palettes from a YAML file and merges them over the
// builtins. The file has a top-level "palettes" key:
//
//	palettes:
//	  oranges: ["#fff5eb", ...]
func LoadPalettes(path string) (Palettes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scale: read palettes %s", path)
	}

	var wrapper struct {
		Palettes map[string][]string `yaml:"palettes"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "scale: parse palettes")
	}

	out := BuiltinPalettes()
	for name, colors := range wrapper.Palettes {
		if len(colors) != Bins {
			return nil, eris.Wrapf(ErrPaletteSize, "palette %q has %d", name, len(colors))
		}
		out[strings.ToLower(name)] = colors
	}
	return out, nil
}

// Get returns the named palette.
func (p Palettes) Get(name string) ([]string, error) {
	colors, ok := p[strings.ToLower(name)]
	if !ok {
		return nil, eris.Errorf("scale: unknown palette %q (have %s)", name, strings.Join(p.Names(), ", "))
	}
	if len(colors) != Bins {
		return nil, eris.Wrapf(ErrPaletteSize, "palette %q has %d", name, len(colors))
	}
	out := make([]string, len(colors))
	copy(out, colors)
	return out, nil
}

// Names returns palette names in sorted order.
func (p Palettes) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
