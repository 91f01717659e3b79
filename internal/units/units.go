// Package units converts between millimetres, the engine's internal unit,
// and the display units offered to the user.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is a linear display unit.
type Unit string

const (
	MM   Unit = "mm"
	CM   Unit = "cm"
	Inch Unit = "inch"
)

// MMPerInch is the exact inch definition.
const MMPerInch = 25.4

// fractionPrecision is the finest inch fraction shown (1/64").
const fractionPrecision = 64

// All lists the supported units in display order.
var All = []Unit{MM, CM, Inch}

// ParseUnit accepts the unit names and common aliases, case-insensitively.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm", "millimeter", "millimeters", "millimetre", "millimetres":
		return MM, nil
	case "cm", "centimeter", "centimeters", "centimetre", "centimetres":
		return CM, nil
	case "in", "inch", "inches", `"`:
		return Inch, nil
	}
	return "", fmt.Errorf("unknown unit %q (use mm, cm or inch)", s)
}

// ToMM converts v in unit u to millimetres.
func ToMM(v float64, u Unit) float64 {
	switch u {
	case CM:
		return v * 10
	case Inch:
		return v * MMPerInch
	default:
		return v
	}
}

// FromMM converts millimetres to unit u.
func FromMM(mm float64, u Unit) float64 {
	switch u {
	case CM:
		return mm / 10
	case Inch:
		return mm / MMPerInch
	default:
		return mm
	}
}

// Format renders a millimetre value in unit u. Millimetres print as an
// integer or with one decimal, centimetres as an integer or with two, and
// inches as a whole number plus a reduced fraction to 1/64".
func Format(mm float64, u Unit) string {
	switch u {
	case Inch:
		return Fraction(mm / MMPerInch)
	case CM:
		return trimNumber(mm/10, 2)
	default:
		return trimNumber(mm, 1)
	}
}

// FormatWithUnit is Format followed by the unit suffix.
func FormatWithUnit(mm float64, u Unit) string {
	if u == Inch {
		return Format(mm, u) + `"`
	}
	return Format(mm, u) + " " + string(u)
}

func trimNumber(v float64, decimals int) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Fraction renders a non-negative inch value as "W N/D", "N/D" or "W".
func Fraction(inches float64) string {
	if inches == 0 {
		return "0"
	}
	whole := math.Floor(inches)
	remainder := inches - whole
	if math.Abs(remainder) < 1.0/(2*fractionPrecision) {
		return strconv.Itoa(int(whole))
	}

	num := int(math.Round(remainder * fractionPrecision))
	den := fractionPrecision
	if num == den {
		return strconv.Itoa(int(whole) + 1)
	}

	g := gcd(num, den)
	num /= g
	den /= g

	if whole > 0 {
		return fmt.Sprintf("%d %d/%d", int(whole), num, den)
	}
	return fmt.Sprintf("%d/%d", num, den)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ParseDimension parses user input in unit u and returns millimetres.
// Besides plain decimals it accepts inch-style fractions such as "5/8" and
// "23 5/8", and an optional trailing unit suffix that overrides u.
func ParseDimension(text string, u Unit) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("empty dimension")
	}

	for _, suffix := range []struct {
		text string
		unit Unit
	}{
		{`"`, Inch}, {"inches", Inch}, {"inch", Inch}, {"in", Inch},
		{"mm", MM}, {"cm", CM},
	} {
		if strings.HasSuffix(strings.ToLower(s), suffix.text) {
			s = strings.TrimSpace(s[:len(s)-len(suffix.text)])
			u = suffix.unit
			break
		}
	}

	v, err := parseMixedNumber(s)
	if err != nil {
		return 0, fmt.Errorf("invalid dimension %q: %w", text, err)
	}
	return ToMM(v, u), nil
}

func parseMixedNumber(s string) (float64, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return parseFraction(fields[0])
	case 2:
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, err
		}
		frac, err := parseFraction(fields[1])
		if err != nil {
			return 0, err
		}
		if !strings.Contains(fields[1], "/") {
			return 0, fmt.Errorf("expected a fraction after %q", fields[0])
		}
		if whole < 0 {
			return whole - frac, nil
		}
		return whole + frac, nil
	}
	return 0, fmt.Errorf("too many fields")
}

func parseFraction(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return strconv.ParseFloat(s, 64)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("division by zero")
	}
	return n / d, nil
}
