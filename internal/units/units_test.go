package units

import (
	"math"
	"testing"
)

func TestParseUnit(t *testing.T) {
	cases := map[string]Unit{
		"mm":     MM,
		" MM ":   MM,
		"cm":     CM,
		"in":     Inch,
		"Inches": Inch,
		"inch":   Inch,
	}
	for in, want := range cases {
		got, err := ParseUnit(in)
		if err != nil {
			t.Errorf("ParseUnit(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseUnit(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseUnit("furlong"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestConversionsRoundTrip(t *testing.T) {
	for _, u := range All {
		for _, v := range []float64{0, 1, 3.175, 762, 2440} {
			got := ToMM(FromMM(v, u), u)
			if math.Abs(got-v) > 1e-9 {
				t.Errorf("%s round trip of %v gave %v", u, v, got)
			}
		}
	}
	if ToMM(1, Inch) != 25.4 {
		t.Errorf("1 inch should be 25.4mm, got %v", ToMM(1, Inch))
	}
	if ToMM(2, CM) != 20 {
		t.Errorf("2cm should be 20mm, got %v", ToMM(2, CM))
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		mm   float64
		unit Unit
		want string
	}{
		{762, MM, "762"},
		{762.5, MM, "762.5"},
		{1220, CM, "122"},
		{12.5, CM, "1.25"},
		{600, Inch, "23 5/8"},
		{2440, Inch, "96 1/16"},
		{3.175, Inch, "1/8"},
		{25.4, Inch, "1"},
		{0, Inch, "0"},
	}
	for _, c := range cases {
		if got := Format(c.mm, c.unit); got != c.want {
			t.Errorf("Format(%v, %s) = %q, want %q", c.mm, c.unit, got, c.want)
		}
	}
}

func TestFormatWithUnit(t *testing.T) {
	if got := FormatWithUnit(25.4, Inch); got != `1"` {
		t.Errorf("got %q", got)
	}
	if got := FormatWithUnit(100, MM); got != "100 mm" {
		t.Errorf("got %q", got)
	}
}

func TestFractionRoundsUpToWhole(t *testing.T) {
	if got := Fraction(1.999); got != "2" {
		t.Errorf("Fraction(1.999) = %q, want 2", got)
	}
	if got := Fraction(0.5); got != "1/2" {
		t.Errorf("Fraction(0.5) = %q, want 1/2", got)
	}
}

func TestParseDimension(t *testing.T) {
	cases := []struct {
		text string
		unit Unit
		want float64
	}{
		{"762", MM, 762},
		{"76.2", CM, 762},
		{"1", Inch, 25.4},
		{"5/8", Inch, 15.875},
		{"23 5/8", Inch, 600.075},
		{`2"`, MM, 50.8},
		{"10 cm", Inch, 100},
		{"12mm", Inch, 12},
	}
	for _, c := range cases {
		got, err := ParseDimension(c.text, c.unit)
		if err != nil {
			t.Errorf("ParseDimension(%q): %v", c.text, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ParseDimension(%q, %s) = %v, want %v", c.text, c.unit, got, c.want)
		}
	}
}

func TestParseDimensionErrors(t *testing.T) {
	for _, text := range []string{"", "abc", "1/0", "1 2 3", "3 4"} {
		if _, err := ParseDimension(text, Inch); err == nil {
			t.Errorf("expected error for %q", text)
		}
	}
}
