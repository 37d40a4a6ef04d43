// Package numfmt formats numbers from d3-style format specifiers such as
// ".1%" or ",.2f". Only English output is produced.
package numfmt

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// defaultPrecision applies to the fixed and exponent types when the specifier
// has none.
const defaultPrecision = 6

var specRe = regexp.MustCompile(`^([-+ ])?(,)?(?:\.(\d+))?([fde%])?$`)

var printer = message.NewPrinter(language.English)

// Formatter formats float64 values according to a parsed specifier.
type Formatter struct {
	spec      string
	sign      byte // '-', '+' or ' '
	group     bool
	precision int // -1 when unset
	typ       byte // 'f', 'd', 'e', '%' or 0
}

// Parse parses a specifier of the form [sign][,][.precision][type].
func Parse(spec string) (Formatter, error) {
	m := specRe.FindStringSubmatch(spec)
	if m == nil {
		return Formatter{}, eris.Errorf("numfmt: invalid format %q", spec)
	}

	f := Formatter{spec: spec, sign: '-', precision: -1}
	if m[1] != "" {
		f.sign = m[1][0]
	}
	f.group = m[2] != ""
	if m[3] != "" {
		p, err := strconv.Atoi(m[3])
		if err != nil || p > 20 {
			return Formatter{}, eris.Errorf("numfmt: invalid precision in %q", spec)
		}
		f.precision = p
	}
	if m[4] != "" {
		f.typ = m[4][0]
	}
	return f, nil
}

// MustParse is like Parse but panics on an invalid specifier.
func MustParse(spec string) Formatter {
	f, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return f
}

// Format is a shorthand for Parse followed by Formatter.Format.
func Format(spec string, v float64) (string, error) {
	f, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return f.Format(v), nil
}

// String returns the specifier the formatter was parsed from.
func (f Formatter) String() string {
	return f.spec
}

// Format renders v.
func (f Formatter) Format(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}

	if f.typ == '%' {
		v *= 100
	}
	neg := math.Signbit(v)
	body := f.body(math.Abs(v))
	if !math.IsInf(v, 0) && isZero(body) {
		neg = false
	}

	var sb strings.Builder
	switch {
	case neg:
		sb.WriteByte('-')
	case f.sign == '+':
		sb.WriteByte('+')
	case f.sign == ' ':
		sb.WriteByte(' ')
	}
	sb.WriteString(body)
	if f.typ == '%' {
		sb.WriteByte('%')
	}
	return sb.String()
}

// body formats the non-negative magnitude without sign or suffix.
func (f Formatter) body(abs float64) string {
	if math.IsInf(abs, 0) {
		return "Infinity"
	}

	switch f.typ {
	case 'f', '%':
		return f.fixed(abs, f.precisionOr(defaultPrecision))
	case 'd':
		return f.fixed(math.Round(abs), 0)
	case 'e':
		return exponent(strconv.FormatFloat(abs, 'e', f.precisionOr(defaultPrecision), 64))
	default:
		if f.precision < 0 {
			return strconv.FormatFloat(abs, 'g', -1, 64)
		}
		p := f.precision
		if p == 0 {
			p = 1
		}
		return strconv.FormatFloat(abs, 'g', p, 64)
	}
}

func (f Formatter) fixed(abs float64, digits int) string {
	if !f.group {
		return strconv.FormatFloat(abs, 'f', digits, 64)
	}
	return printer.Sprint(number.Decimal(abs, number.Scale(digits)))
}

func (f Formatter) precisionOr(def int) int {
	if f.precision < 0 {
		return def
	}
	return f.precision
}

// exponent trims zero padding from the exponent: "1.50e+03" becomes "1.50e+3".
func exponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mant, sign, exp := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + string(sign) + exp
}

func isZero(s string) bool {
	for _, r := range s {
		if r >= '1' && r <= '9' {
			return false
		}
	}
	return true
}
