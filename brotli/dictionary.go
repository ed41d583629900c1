// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import (
	"fmt"
	"os"
)

// RFC section 8: the static dictionary groups words by length 4..24; the
// count of words for a given length is 1 << dictBitSizes[length].
const (
	minDictLen = 4
	maxDictLen = 24
)

// realDictionaryEnv names an environment variable pointing at a file holding
// the literal RFC 7932 Appendix A dictionary (122784 bytes, uncompressed,
// word bytes concatenated in length-then-index order). When set to a file of
// exactly that length, initDictLUTs loads it in place of the placeholder
// below.
const realDictionaryEnv = "BROTLI_DICTIONARY_FILE"

var (
	dictBitSizes = [maxDictLen + 1]uint{
		0, 0, 0, 0, 10, 10, 11, 11, 10, 10, 10, 10, 10, 9, 9, 8, 7, 7, 8, 7, 7, 6, 6, 5, 5,
	}
	dictSizes   [maxDictLen + 1]int // Number of words of each length
	dictOffsets [maxDictLen + 1]int // Cumulative byte offset of each length group

	// dictWords holds the concatenated raw dictionary word bytes, indexed by
	// dictOffsets[length] + index*length. Unless realDictionaryEnv points at
	// the real RFC 7932 Appendix A blob, this is a deterministic placeholder
	// of the correct per-length sizes; the surrounding machinery (offsets,
	// NWORDS, transform dispatch, error cases) does not depend on the table's
	// content.
	dictWords []byte
)

func initDictLUTs() {
	off := 0
	for l := minDictLen; l <= maxDictLen; l++ {
		dictSizes[l] = 1 << dictBitSizes[l]
		dictOffsets[l] = off
		off += dictSizes[l] * l
	}
	if data, ok := loadRealDictionary(off); ok {
		dictWords = data
		return
	}
	dictWords = generatePlaceholderDictionary(off)
}

// loadRealDictionary reads the dictionary named by realDictionaryEnv, if
// set, and accepts it only if its length exactly matches want. A mismatch
// or read failure falls back to the placeholder loudly, on stderr, rather
// than risking a silently truncated or offset dictionary.
func loadRealDictionary(want int) ([]byte, bool) {
	path := os.Getenv(realDictionaryEnv)
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "brotli: %s=%q: %v; falling back to the synthetic placeholder dictionary\n", realDictionaryEnv, path, err)
		return nil, false
	}
	if len(data) != want {
		fmt.Fprintf(os.Stderr, "brotli: %s=%q: got %d bytes, want %d; falling back to the synthetic placeholder dictionary\n", realDictionaryEnv, path, len(data), want)
		return nil, false
	}
	return data, true
}

// generatePlaceholderDictionary fills a buffer of the real dictionary's
// total size with deterministic lowercase-letter filler, used whenever
// loadRealDictionary finds nothing usable.
//
// TODO: replace with the literal RFC 7932 Appendix A dictionary blob, or
// point BROTLI_DICTIONARY_FILE at it.
func generatePlaceholderDictionary(n int) []byte {
	buf := make([]byte, n)
	var x uint32 = 0x9e3779b9
	for i := range buf {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		buf[i] = byte('a' + x%26)
	}
	return buf
}

// dictionaryWord returns the raw (untransformed) dictionary word of the
// given length selected by wordID.
func dictionaryWord(length, wordID int) []byte {
	n := dictSizes[length]
	idx := wordID % n
	off := dictOffsets[length] + idx*length
	return dictWords[off : off+length]
}

// lookupDictionary resolves a static dictionary reference of the given
// length and raw word id, applies its transform, and appends the result to
// dst, per RFC section 8.
func lookupDictionary(dst []byte, wordID, length int) []byte {
	if length < minDictLen || length > maxDictLen {
		panic(ErrInvalidDictionaryReferenceLength)
	}
	transformID := wordID >> dictBitSizes[length]
	if transformID < 0 || transformID >= len(transformLUT) {
		panic(ErrInvalidTransformID)
	}
	word := dictionaryWord(length, wordID)
	var buf [maxWordSize]byte
	n := transformWord(buf[:], word, transformID)
	return append(dst, buf[:n]...)
}
