package seedrandom

import "testing"

func TestFloat64_MatchesReferenceVector(t *testing.T) {
	src := New("hello.")
	want := []float64{0.9282578795792454, 0.3752569768646784}
	for i, w := range want {
		if got := src.Float64(); got != w {
			t.Fatalf("draw %d = %v, want %v", i, got, w)
		}
	}
}

func TestFloat64_GalleryKeys(t *testing.T) {
	cases := []struct {
		seed string
		want float64
	}{
		{"test-0", 0.018346519954776062},
		{"test-1", 0.828758594845592},
		{"test-42", 0.04577984587901381},
		{"test-9007199254740991", 0.03335961185651019},
	}
	for _, tc := range cases {
		t.Run(tc.seed, func(t *testing.T) {
			if got := New(tc.seed).Float64(); got != tc.want {
				t.Fatalf("New(%q).Float64() = %v, want %v", tc.seed, got, tc.want)
			}
		})
	}
}

func TestFloat64_Range(t *testing.T) {
	src := New("range")
	for i := 0; i < 10000; i++ {
		v := src.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d = %v, want [0,1)", i, v)
		}
	}
}

func TestNew_SameSeedSameStream(t *testing.T) {
	a, b := New("same"), New("same")
	for i := 0; i < 100; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestNew_EmptySeed(t *testing.T) {
	v := New("").Float64()
	if v < 0 || v >= 1 {
		t.Fatalf("empty seed draw = %v, want [0,1)", v)
	}
	if New("").Float64() != v {
		t.Fatalf("empty seed is not reproducible")
	}
}
