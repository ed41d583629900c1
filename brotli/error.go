// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package brotli

import "runtime"

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return string(e) }

var (
	ErrCorrupt = Error("brotli: stream is corrupted")

	// ErrInvalidFormat reports a reserved bit set to an unexpected value or
	// an otherwise unsupported meta-block encoding.
	ErrInvalidFormat = Error("brotli: invalid stream format")
	// ErrInvalidSymbol reports a decoded symbol outside its alphabet.
	ErrInvalidSymbol = Error("brotli: invalid symbol")
	// ErrSymbolNotFound reports that a Huffman lookup exhausted all
	// available bits without resolving to a symbol.
	ErrSymbolNotFound = Error("brotli: symbol not found in prefix tree")
	// ErrMismatchedChecksum reports a code-length completeness sum that
	// does not equal the expected total.
	ErrMismatchedChecksum = Error("brotli: mismatched prefix code checksum")
	// ErrNotEnoughCodeLengths reports a complex prefix code with fewer
	// than two nonzero code lengths.
	ErrNotEnoughCodeLengths = Error("brotli: not enough code lengths")
	// ErrRunlengthExceedsSize reports a run-length expansion (in a context
	// map or a complex prefix code) that overflows its target size.
	ErrRunlengthExceedsSize = Error("brotli: run-length encoding exceeds expected size")
	// ErrInvalidDictionaryReferenceLength reports a static dictionary
	// reference whose length falls outside [4, 24].
	ErrInvalidDictionaryReferenceLength = Error("brotli: invalid dictionary reference length")
	// ErrInvalidTransformID reports a static dictionary transform id
	// outside [0, 120].
	ErrInvalidTransformID = Error("brotli: invalid transform id")
)

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
