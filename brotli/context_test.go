package brotli

import (
	"bytes"
	"testing"

	"github.com/simonwuelker/stormlicht/internal/testutil"
)

// TestLiteralContextIDLSB6MSB6 checks the two context modes that are pure
// bit arithmetic (no lookup table involved), per RFC section 7.1.
func TestLiteralContextIDLSB6MSB6(t *testing.T) {
	if got := literalContextID(contextLSB6, 0xC5, 0xFF); got != 0x05 {
		t.Errorf("LSB6(0xC5) = %#x, want 0x05", got)
	}
	if got := literalContextID(contextMSB6, 0xC5, 0xFF); got != 0xC5>>2 {
		t.Errorf("MSB6(0xC5) = %#x, want %#x", got, 0xC5>>2)
	}
}

// TestLiteralContextIDUTF8Signed checks the table-driven UTF8 and Signed
// context modes against hand-derived RFC section 7.1 context ids, and that
// every byte pair stays within the 6-bit context id range.
func TestLiteralContextIDUTF8Signed(t *testing.T) {
	vectors := []struct {
		mode   int
		p1, p2 byte
		want   uint
	}{
		{contextUTF8, 0x00, 0x00, 0},  // control after control
		{contextUTF8, 't', ' ', 60},   // lowercase after space
		{contextUTF8, 'e', 'h', 59},   // lowercase after lowercase
		{contextUTF8, 'A', '.', 49},   // uppercase after punctuation
		{contextUTF8, '0', 'a', 47},   // digit after lowercase
		{contextSigned, 0x00, 0x00, 0},
		{contextSigned, 0xFF, 0x00, 56},
		{contextSigned, 0x80, 0xFF, 39},
		{contextSigned, 0x10, 0x3F, 18},
	}
	for _, v := range vectors {
		if got := literalContextID(v.mode, v.p1, v.p2); got != v.want {
			t.Errorf("literalContextID(%d, %#x, %#x) = %d, want %d", v.mode, v.p1, v.p2, got, v.want)
		}
	}

	for p1 := 0; p1 < 256; p1++ {
		for _, p2 := range []byte{0x00, 0x41, 0x80, 0xFF} {
			if id := literalContextID(contextUTF8, byte(p1), p2); id >= 64 {
				t.Fatalf("UTF8 context id %d out of range for p1=%#x p2=%#x", id, p1, p2)
			}
			if sid := literalContextID(contextSigned, byte(p1), p2); sid >= 64 {
				t.Fatalf("Signed context id %d out of range for p1=%#x p2=%#x", sid, p1, p2)
			}
		}
	}
}

// TestInverseMoveToFront checks the RLE/inverse-MTF decode in isolation
// against a hand-traced sequence.
func TestInverseMoveToFront(t *testing.T) {
	vals := []byte{0, 0, 0, 2, 1, 0}
	inverseMoveToFront(vals)
	want := []byte{0, 0, 0, 2, 0, 0}
	if !bytes.Equal(vals, want) {
		t.Errorf("inverseMoveToFront = %v, want %v", vals, want)
	}
}

// TestReadContextMapRLEAndInverseMTF builds a context map definition over
// numTrees=3 trees and size=6 entries using the RLE escape (symbol 1, one
// extra bit, run length 3) for a leading run of zeros, two literal tree
// indices, and a final literal zero, then applies inverse-MTF. This is the
// same symbol sequence traced by hand in the comment below.
//
// Pre-inverse-MTF symbols: [0, 0, 0 (from the RLE run), 2, 1, 0].
// Inverse-MTF replays an initially-identity permutation:
//
//	idx=0 -> 0 (no-op)            -> out[0]=0
//	idx=0 -> 0 (no-op)            -> out[1]=0
//	idx=0 -> 0 (no-op)            -> out[2]=0
//	idx=2 -> 2, move to front     -> out[3]=2, mtf=[2,0,1,...]
//	idx=1 -> 0, move to front     -> out[4]=0, mtf=[0,2,1,...]
//	idx=0 -> 0 (no-op)            -> out[5]=0
func TestReadContextMapRLEAndInverseMTF(t *testing.T) {
	stream := testutil.MustDecodeBitGen(`<<<
		D1:1 D4:1              # RLEMAX present, value 1 -> rlemax=2

		D2:1 D2:3              # prefix tree for the size-5 context-map alphabet:
		D3:0 D3:1 D3:3 D3:4    #   simple code, 4 symbols {0,1,3,4}
		D1:0                   #   (lens4a: all length 2)

		D2:2 D1:1              # symbol 1 (RLE), extra bit 1 -> run = 2+1 = 3
		D2:3                   # symbol 4 -> lit 4-2=2
		D2:1                   # symbol 3 -> lit 3-2=1
		D2:0                   # symbol 0 -> lit 0

		D1:1                   # inverse-MTF present
	`)

	var br bitReader
	br.Init(bytes.NewReader(stream))
	got := readContextMap(&br, 6, 3)
	want := []byte{0, 0, 0, 2, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("readContextMap = %v, want %v", got, want)
	}
}
