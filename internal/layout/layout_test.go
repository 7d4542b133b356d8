package layout

import (
	"errors"
	"testing"
)

func TestCompute(t *testing.T) {
	cases := []struct {
		class Class
		total int
		want  Plan
	}{
		{Mobile, 100, Plan{Rows: 100, PerRow: 1}},
		{SM, 100, Plan{Rows: 50, PerRow: 2}},
		{MD, 100, Plan{Rows: 50, PerRow: 2}},
		{LG, 101, Plan{Rows: 51, PerRow: 2}},
		{XL, 100, Plan{Rows: 34, PerRow: 3}},
		{XXL, 99, Plan{Rows: 33, PerRow: 3}},
		{MD, 0, Plan{Rows: 0, PerRow: 2}},
		{Class(42), 10, Plan{Rows: 4, PerRow: 3}},
	}
	for _, tc := range cases {
		got, err := Compute(tc.total, tc.class)
		if err != nil {
			t.Fatalf("Compute(%d, %s) error: %v", tc.total, tc.class, err)
		}
		if got != tc.want {
			t.Fatalf("Compute(%d, %s) = %+v, want %+v", tc.total, tc.class, got, tc.want)
		}
	}
}

func TestCompute_Unresolved(t *testing.T) {
	_, err := Compute(100, Unknown)
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("Compute(100, Unknown) error = %v, want ErrUnresolved", err)
	}
}

func TestClassify(t *testing.T) {
	bp := DefaultBreakpoints()
	cases := []struct {
		width int
		want  Class
	}{
		{0, Unknown},
		{-3, Unknown},
		{40, Mobile},
		{63, Mobile},
		{64, SM},
		{80, MD},
		{99, MD},
		{100, LG},
		{128, XL},
		{153, XL},
		{154, XXL},
		{400, XXL},
	}
	for _, tc := range cases {
		if got := bp.Classify(tc.width); got != tc.want {
			t.Fatalf("Classify(%d) = %s, want %s", tc.width, got, tc.want)
		}
	}
}

func TestBreakpoints_Validate(t *testing.T) {
	if err := DefaultBreakpoints().Validate(); err != nil {
		t.Fatalf("DefaultBreakpoints().Validate() = %v", err)
	}
	bad := []Breakpoints{
		{SM: 0, MD: 80, LG: 100, XL: 128, XXL: 154},
		{SM: 64, MD: 64, LG: 100, XL: 128, XXL: 154},
		{SM: 64, MD: 80, LG: 100, XL: 90, XXL: 154},
	}
	for _, b := range bad {
		if err := b.Validate(); err == nil {
			t.Fatalf("Validate(%+v) = nil, want error", b)
		}
	}
}

func TestParseClass(t *testing.T) {
	for _, c := range []Class{Mobile, SM, MD, LG, XL, XXL} {
		got, err := ParseClass(c.String())
		if err != nil || got != c {
			t.Fatalf("ParseClass(%q) = %s, %v; want %s", c.String(), got, err, c)
		}
	}
	if got, err := ParseClass(" 2XL "); err != nil || got != XXL {
		t.Fatalf("ParseClass(\" 2XL \") = %s, %v; want 2xl", got, err)
	}
	if _, err := ParseClass("unknown"); err == nil {
		t.Fatal("ParseClass(\"unknown\") = nil error, want error")
	}
}

func TestRowOf(t *testing.T) {
	cases := []struct {
		index  int64
		perRow int
		want   int
	}{
		{42, 1, 42},
		{42, 2, 21},
		{42, 3, 14},
		{44, 3, 14},
		{-1, 3, 0},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := RowOf(tc.index, tc.perRow); got != tc.want {
			t.Fatalf("RowOf(%d, %d) = %d, want %d", tc.index, tc.perRow, got, tc.want)
		}
	}
}

func TestPlan_Items(t *testing.T) {
	p := Plan{Rows: 4, PerRow: 3}
	if first, end := p.Items(1, 10); first != 3 || end != 6 {
		t.Fatalf("Items(1, 10) = [%d,%d), want [3,6)", first, end)
	}
	if first, end := p.Items(3, 10); first != 9 || end != 10 {
		t.Fatalf("Items(3, 10) = [%d,%d), want [9,10)", first, end)
	}
}
