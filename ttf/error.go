// Package ttf parses TrueType fonts and extracts glyph outlines as a stream
// of path operations, covering the head/cmap/loca/glyf/hmtx/hhea/maxp/name
// tables.
package ttf

// Error is the wrapper type for errors specific to this package, mirroring
// brotli.Error.
type Error string

func (e Error) Error() string { return string(e) }

var (
	// ErrUnexpectedEOF reports a table that ends before all of its mandatory
	// fields could be read.
	ErrUnexpectedEOF = Error("ttf: unexpected end of table data")
	// ErrUnsupportedFormat reports a scaler type other than 0x00010000.
	ErrUnsupportedFormat = Error("ttf: unsupported scaler type")
	// ErrMissingTable reports the absence of a mandatory table.
	ErrMissingTable = Error("ttf: missing mandatory table")
	// ErrBadTable reports a table whose length or internal structure does
	// not match its format.
	ErrBadTable = Error("ttf: malformed table")
)
