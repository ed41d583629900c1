// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// Literal context modes, RFC section 7.1.
const (
	contextLSB6 = iota
	contextMSB6
	contextUTF8
	contextSigned
)

// contextP1LUT and contextP2LUT classify the two previous output bytes for
// the UTF8 literal context mode: CID = contextP1LUT[p1] | contextP2LUT[p2].
// contextSignedLUT classifies both bytes for the Signed context mode:
// CID = (contextSignedLUT[p1] << 3) | contextSignedLUT[p2].
// RFC section 7.1.
var (
	contextP1LUT = [256]byte{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 4, 4, 0, 0, 4, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		8, 12, 16, 12, 12, 20, 12, 16, 24, 28, 12, 12, 32, 12, 36, 12,
		44, 44, 44, 44, 44, 44, 44, 44, 44, 44, 32, 32, 24, 40, 28, 12,
		12, 48, 52, 52, 52, 48, 52, 52, 52, 48, 52, 52, 52, 52, 52, 48,
		52, 52, 52, 52, 52, 48, 52, 52, 52, 52, 52, 24, 12, 28, 12, 12,
		12, 56, 60, 60, 60, 56, 60, 60, 60, 56, 60, 60, 60, 60, 60, 56,
		60, 60, 60, 60, 60, 56, 60, 60, 60, 60, 60, 24, 12, 28, 12, 0,
		0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1,
		0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1,
		0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1,
		0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1,
		2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3,
		2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3,
		2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3,
		2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3, 2, 3,
	}

	contextP2LUT = [256]byte{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1, 1,
		1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
		2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1,
		1, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
		3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 1, 1, 1, 1, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
		2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	}

	contextSignedLUT = [256]byte{
		0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
		2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
		2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
		3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
		3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
		3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
		3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
		4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
		4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
		4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
		4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
		5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
		5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
		5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
		6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 7,
	}

	// mtfLUT is the identity permutation used to seed inverse move-to-front
	// decoding of context maps.
	mtfLUT [256]byte
)

func initContextLUTs() {
	for i := range mtfLUT {
		mtfLUT[i] = byte(i)
	}
}

// literalContextID computes the 6-bit literal context id from the previous
// two output bytes p1 (most recent) and p2, per the context mode.
func literalContextID(mode int, p1, p2 byte) uint {
	switch mode {
	case contextLSB6:
		return uint(p1 & 0x3F)
	case contextMSB6:
		return uint(p1 >> 2)
	case contextUTF8:
		return uint(contextP1LUT[p1] | contextP2LUT[p2])
	case contextSigned:
		return uint(contextSignedLUT[p1])<<3 | uint(contextSignedLUT[p2])
	default:
		panic(ErrCorrupt)
	}
}

// distanceContextID computes the 2-bit distance context id from the copy
// length of the current command, per RFC section 7.1.
func distanceContextID(copyLen uint) uint {
	switch {
	case copyLen == 2:
		return 0
	case copyLen == 3:
		return 1
	case copyLen == 4:
		return 2
	default:
		return 3
	}
}

// readContextMap reads a context map of the given size over numTrees trees,
// per RFC section 7.3. It returns the decoded (and possibly inverse-MTF'd)
// tree index for each of the size context-map entries.
func readContextMap(br *bitReader, size, numTrees int) []byte {
	rlePresent := br.ReadBits(1) == 1
	rlemax := 0
	if rlePresent {
		rlemax = int(br.ReadBits(4)) + 1
	}
	alphabet := numTrees + rlemax
	pd := readPrefixDecoder(br, alphabet)

	out := make([]byte, 0, size)
	for len(out) < size {
		sym := int(br.ReadSymbol(pd))
		switch {
		case sym == 0:
			out = append(out, 0)
		case sym <= rlemax:
			run := (1 << uint(sym)) + int(br.ReadBits(uint(sym)))
			if len(out)+run > size {
				panic(ErrRunlengthExceedsSize)
			}
			for i := 0; i < run; i++ {
				out = append(out, 0)
			}
		default:
			lit := sym - rlemax
			if lit >= numTrees {
				panic(ErrInvalidSymbol)
			}
			out = append(out, byte(lit))
		}
	}

	if br.ReadBits(1) == 1 {
		inverseMoveToFront(out)
	}
	return out
}

// inverseMoveToFront undoes a move-to-front transform in place: each value
// in vals indexes into the current permutation (initially 0..255), is
// replaced by the value found there, and that value is moved to the front.
func inverseMoveToFront(vals []byte) {
	var mtf [256]byte
	copy(mtf[:], mtfLUT[:])
	for i, idx := range vals {
		v := mtf[idx]
		copy(mtf[1:idx+1], mtf[:idx])
		mtf[0] = v
		vals[i] = v
	}
}
