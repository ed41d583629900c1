// Package textcursor implements a reversible rune cursor over a borrowed
// string. It underlies the CSS tokenizer's lookahead and escape handling,
// which routinely need to peek several code points ahead and then rewind
// without re-decoding UTF-8 from the start.
package textcursor

import "unicode/utf8"

// Cursor walks the runes of a string, tracking byte offsets so that
// positions can be saved and restored cheaply.
type Cursor struct {
	src string
	pos int // Byte offset of the next rune to be returned by Next
}

// New returns a Cursor positioned at the start of src.
func New(src string) *Cursor {
	return &Cursor{src: src}
}

// Current returns the rune at the cursor without advancing it. It returns
// utf8.RuneError with a size of 0 at end of input.
func (c *Cursor) Current() (rune, int) {
	if c.pos >= len(c.src) {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	return r, size
}

// Next returns the rune at the cursor and advances past it. It returns
// utf8.RuneError with ok=false at end of input.
func (c *Cursor) Next() (r rune, ok bool) {
	r, size := c.Current()
	if size == 0 {
		return utf8.RuneError, false
	}
	c.pos += size
	return r, true
}

// GoBack rewinds the cursor by one rune, decoding backward from the
// current position. It panics if called at the start of input, since no
// caller in this package ever rewinds further than it has advanced.
func (c *Cursor) GoBack() {
	if c.pos == 0 {
		panic("textcursor: GoBack at start of input")
	}
	_, size := utf8.DecodeLastRuneInString(c.src[:c.pos])
	c.pos -= size
}

// Position returns the current byte offset, suitable for SetPosition.
func (c *Cursor) Position() int {
	return c.pos
}

// SetPosition restores a byte offset previously returned by Position.
func (c *Cursor) SetPosition(pos int) {
	c.pos = pos
}

// AdvanceBy skips forward n runes, stopping early at end of input.
func (c *Cursor) AdvanceBy(n int) {
	for i := 0; i < n; i++ {
		if _, ok := c.Next(); !ok {
			return
		}
	}
}

// Remaining reports whether any input remains.
func (c *Cursor) Remaining() bool {
	return c.pos < len(c.src)
}

// Slice returns the substring between two positions previously obtained
// from Position, for extracting token text without re-encoding runes.
func (c *Cursor) Slice(start, end int) string {
	return c.src[start:end]
}
