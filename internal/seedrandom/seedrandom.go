package seedrandom

import "unicode/utf16"

const (
	width        = 256
	mask         = width - 1
	chunks       = 6
	startDenom   = 281474976710656.0  // 256^6
	significance = 4503599627370496.0 // 2^52
	overflow     = 9007199254740992.0 // 2^53
)

// Source is a reproducible stream of pseudo-random numbers.
type Source struct {
	i, j int
	s    [width]int
}

// New returns a Source keyed by seed.
func New(seed string) *Source {
	src := &Source{}
	src.init(mixKey(seed))
	return src
}

// Float64 returns the next value in [0, 1).
func (src *Source) Float64() float64 {
	n := float64(src.next(chunks))
	d := startDenom
	x := 0
	for n < significance {
		n = (n + float64(x)) * width
		d *= width
		x = src.next(1)
	}
	for n >= overflow {
		n /= 2
		d /= 2
		x >>= 1
	}
	return (n + float64(x)) / d
}

// Uint32 returns the next 32 bits of keystream as an unsigned integer.
func (src *Source) Uint32() uint32 {
	return uint32(src.next(4))
}

func mixKey(seed string) []int {
	units := utf16.Encode([]rune(seed))
	n := len(units)
	if n > width {
		n = width
	}
	key := make([]int, n)
	var smear int32
	for j, unit := range units {
		k := j & mask
		smear ^= int32(key[k] * 19)
		key[k] = mask & int(smear+int32(unit))
	}
	return key
}

func (src *Source) init(key []int) {
	if len(key) == 0 {
		key = []int{0}
	}
	for i := range src.s {
		src.s[i] = i
	}
	j := 0
	for i := 0; i < width; i++ {
		t := src.s[i]
		j = mask & (j + key[i%len(key)] + t)
		src.s[i] = src.s[j]
		src.s[j] = t
	}
	for n := 0; n < width; n++ {
		src.byte()
	}
}

// next packs count keystream bytes big-endian. count never exceeds 6.
func (src *Source) next(count int) int {
	r := 0
	for ; count > 0; count-- {
		r = r*width + src.byte()
	}
	return r
}

func (src *Source) byte() int {
	s := &src.s
	src.i = mask & (src.i + 1)
	t := s[src.i]
	src.j = mask & (src.j + t)
	s[src.i] = s[src.j]
	s[src.j] = t
	return s[mask&(s[src.i]+s[src.j])]
}
