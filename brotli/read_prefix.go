// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

// ceilLog2 returns the number of bits needed to represent values in [0, n).
func ceilLog2(n int) uint {
	var b uint
	for v := 1; v < n; v <<= 1 {
		b++
	}
	return b
}

// readPrefixDecoder reads one prefix code definition for an alphabet of the
// given size, per RFC section 3.4/3.5, and returns a decoder for it.
//
// The leading 2-bit field ("simple_code_or_skip") serves double duty: the
// value 1 selects the simple prefix code; the values 0, 2, and 3 select the
// complex prefix code AND are themselves the HSKIP count, with no separate
// HSKIP field following.
func readPrefixDecoder(br *bitReader, alphabet int) *prefixDecoder {
	pd := new(prefixDecoder)
	if v := br.ReadBits(2); v == 1 {
		readSimplePrefixCode(br, pd, alphabet)
	} else {
		readComplexPrefixCode(br, pd, alphabet, int(v))
	}
	return pd
}

// readSimplePrefixCode implements the "simple prefix code" branch.
func readSimplePrefixCode(br *bitReader, pd *prefixDecoder, alphabet int) {
	nsym := int(br.ReadBits(2)) + 1
	rawBits := ceilLog2(alphabet)

	syms := make([]uint16, nsym)
	seen := make(map[uint16]bool, nsym)
	for i := range syms {
		v := uint16(br.ReadBits(rawBits))
		if int(v) >= alphabet || seen[v] {
			panic(ErrInvalidSymbol)
		}
		seen[v] = true
		syms[i] = v
	}

	var lens []uint8
	switch nsym {
	case 1:
		lens = []uint8{0}
	case 2:
		lens = []uint8{1, 1}
		sortUint16s(syms)
	case 3:
		lens = []uint8{1, 2, 2}
		sortUint16s(syms)
	case 4:
		if br.ReadBits(1) == 0 {
			lens = []uint8{2, 2, 2, 2}
			sortUint16s(syms)
		} else {
			lens = []uint8{1, 2, 3, 3}
			sortUint16s(syms[1:]) // position 0 keeps its read order
		}
	default:
		panic(ErrInvalidFormat)
	}

	codes := make(prefixCodes, nsym)
	for i := range codes {
		codes[i] = prefixCode{sym: syms[i], len: lens[i]}
	}
	// Init requires ascending symbol order. Canonical assignment is
	// per-length and the equal-length symbols are already sorted, so
	// reordering by symbol yields the same code values.
	for i := 1; i < len(codes); i++ {
		for j := i; j > 0 && codes[j-1].sym > codes[j].sym; j-- {
			codes[j-1], codes[j] = codes[j], codes[j-1]
		}
	}
	pd.Init(codes, true)
}

// readComplexPrefixCode implements the "complex prefix code" branch. hskip
// is the value already consumed by readPrefixDecoder's leading 2-bit field.
func readComplexPrefixCode(br *bitReader, pd *prefixDecoder, alphabet, hskip int) {
	var lens18 [18]uint
	space, numCodes := 32, 0
	for i := hskip; i < 18; i++ {
		codeLen := br.ReadSymbol(&decCLens)
		pos := complexLens[i]
		lens18[pos] = codeLen
		if codeLen != 0 {
			numCodes++
			space -= 32 >> codeLen
			if space <= 0 {
				break
			}
		}
	}
	if numCodes < 2 {
		panic(ErrNotEnoughCodeLengths)
	}
	if space != 0 {
		panic(ErrMismatchedChecksum)
	}

	var clCodes prefixCodes
	for sym, l := range lens18 {
		if l > 0 {
			clCodes = append(clCodes, prefixCode{sym: uint16(sym), len: uint8(l)})
		}
	}
	var clTree prefixDecoder
	clTree.Init(clCodes, true)

	lengths := make([]uint, alphabet)
	symbol, repeat, repeatLen := 0, 0, uint(0)
	prevLen := uint(8)
	space2 := 32768
	for symbol < alphabet && space2 > 0 {
		codeLen := br.ReadSymbol(&clTree)
		if codeLen < 16 {
			repeat = 0
			lengths[symbol] = codeLen
			symbol++
			if codeLen != 0 {
				prevLen = codeLen
				space2 -= 32768 >> codeLen
			}
			continue
		}

		extraBits := uint(2)
		newLen := prevLen
		if codeLen == 17 {
			extraBits = 3
			newLen = 0
		}
		if repeatLen != newLen {
			repeat = 0
			repeatLen = newLen
		}
		oldRepeat := repeat
		if repeat > 0 {
			repeat -= 2
			repeat <<= extraBits
		}
		repeat += int(br.ReadBits(extraBits)) + 3
		repeatDelta := repeat - oldRepeat
		if symbol+repeatDelta > alphabet {
			panic(ErrRunlengthExceedsSize)
		}
		for i := 0; i < repeatDelta; i++ {
			lengths[symbol] = repeatLen
			symbol++
		}
		if repeatLen != 0 {
			space2 -= repeatDelta * (32768 >> repeatLen)
		}
	}
	if space2 != 0 {
		panic(ErrMismatchedChecksum)
	}

	var codes prefixCodes
	for sym, l := range lengths {
		if l > 0 {
			codes = append(codes, prefixCode{sym: uint16(sym), len: uint8(l)})
		}
	}
	pd.Init(codes, true)
}

// sortUint16s sorts s in place, ascending. Alphabet sizes here are tiny
// (≤4 elements) so a simple insertion sort avoids pulling in "sort".
func sortUint16s(s []uint16) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
