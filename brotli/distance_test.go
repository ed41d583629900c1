package brotli

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/simonwuelker/stormlicht/internal/ring"
	"github.com/simonwuelker/stormlicht/internal/testutil"
)

// TestDistShortCodeTable checks the 16-entry short distance code
// substitution table of RFC section 4 against a ring seeded with four
// distinct, order-identifiable values so that an index/delta mixup would
// show up as a wrong result rather than a coincidentally-right one.
func TestDistShortCodeTable(t *testing.T) {
	// peek_back(0)=40, peek_back(1)=30, peek_back(2)=20, peek_back(3)=10.
	dist := ring.New(10, 20, 30, 40)

	vectors := []struct {
		code int
		want int
	}{
		{0, 40},  // peek_back(0) + 0
		{1, 30},  // peek_back(1) + 0
		{2, 20},  // peek_back(2) + 0
		{3, 10},  // peek_back(3) + 0
		{4, 39},  // peek_back(0) - 1
		{5, 41},  // peek_back(0) + 1
		{6, 38},  // peek_back(0) - 2
		{7, 42},  // peek_back(0) + 2
		{8, 37},  // peek_back(0) - 3
		{9, 43},  // peek_back(0) + 3
		{10, 29}, // peek_back(1) - 1
		{11, 31}, // peek_back(1) + 1
		{12, 28}, // peek_back(1) - 2
		{13, 32}, // peek_back(1) + 2
		{14, 27}, // peek_back(1) - 3
		{15, 33}, // peek_back(1) + 3
	}
	for _, v := range vectors {
		got := dist.PeekBack(distShortCodeIndex[v.code]) + distShortCodeDelta[v.code]
		if got != v.want {
			t.Errorf("short code %d = %d, want %d", v.code, got, v.want)
		}
	}
}

// TestDecodeLargeDistance checks the extra-bits distance formula for a
// couple of hand-derived (sym, extra-bit) pairs with ndirect=0, npostfix=0,
// the simplest parameterization.
//
// sym=16 is the smallest raw code handled by this path: dd=0, numextra=1,
// hcode=0, lcode=0. With extra bit 0: (2+0)<<1-4+0 = 0, result = 0+0+1 = 1.
// With extra bit 1: (2+0)<<1-4+1 = 1, result = 1+0+1 = 2.
func TestDecodeLargeDistance(t *testing.T) {
	vectors := []struct {
		sym   int
		extra uint
		want  int
	}{
		{16, 0, 1},
		{16, 1, 2},
	}
	for _, v := range vectors {
		var br bitReader
		stream := testutil.MustDecodeBitGen(`<<< D1:` + strconv.FormatUint(uint64(v.extra), 10))
		br.Init(bytes.NewReader(stream))
		got := decodeLargeDistance(&br, v.sym, 0, 0)
		if got != v.want {
			t.Errorf("decodeLargeDistance(sym=%d, extra=%d) = %d, want %d", v.sym, v.extra, got, v.want)
		}
	}
}

// TestDecodeLargeDistanceDirect checks that with NDIRECT nonzero, codes in
// [16, 16+ndirect) are direct distances (sym - 15) consuming no extra bits,
// and the first code past that range falls through to the extra-bits
// formula.
func TestDecodeLargeDistanceDirect(t *testing.T) {
	const ndirect = 4
	vectors := []struct {
		sym   int
		bits  string // extra bits fed to the reader, empty for none
		want  int
	}{
		{16, "", 1},
		{17, "", 2},
		{19, "", 4},
		{20, "D1:0", 5}, // dd=0: (2<<1)-4+0 = 0, result = 0+4+1
		{20, "D1:1", 6},
	}
	for _, v := range vectors {
		var br bitReader
		br.Init(bytes.NewReader(testutil.MustDecodeBitGen(`<<< ` + v.bits)))
		got := decodeLargeDistance(&br, v.sym, ndirect, 0)
		if got != v.want {
			t.Errorf("decodeLargeDistance(sym=%d, ndirect=%d) = %d, want %d", v.sym, ndirect, got, v.want)
		}
	}
}
