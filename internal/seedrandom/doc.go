// Package seedrandom implements the ARC4-based seeded generator popularised
// by David Bau's seedrandom.js.
//
// # Overview
//
// The gallery needs per-item values that are identical on every run, on
// every platform and in every implementation that shares the seed. Go's
// math/rand sources are not specified to stay stable across releases and
// hash their seeds differently, so this package fixes the algorithm:
//
//  1. Key schedule: the seed string is folded into a 256-byte key, one
//     UTF-16 code unit at a time (smear ^= key[j]*19; key[j] = smear+unit).
//  2. ARC4 key setup over that key, followed by discarding 256 bytes of
//     keystream (RC4-drop[256]).
//  3. Float64 draws 6 bytes, keeps appending bytes until at least 52 bits
//     of significance are available, then scales down to below 2^53 so the
//     result is an exactly representable double in [0, 1).
//
// # Compatibility
//
// Output is bit-for-bit identical to seedrandom.js for string seeds:
//
//	src := seedrandom.New("hello.")
//	src.Float64() // 0.9282578795792454
//	src.Float64() // 0.3752569768646784
//
// A Source is not safe for concurrent use.
package seedrandom
