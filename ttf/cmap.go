package ttf

import "github.com/tdewolff/parse/v2"

// cmapFormat4 is a single format-4 subtable: a sorted array of contiguous
// codepoint segments, each mapped either by a constant delta or through an
// indirection into glyphIDArray.
type cmapFormat4 struct {
	startCode     []uint16
	endCode       []uint16
	idDelta       []int16
	idRangeOffset []uint16
	glyphIDArray  []uint16
}

// lookup returns the glyph id for r, and whether r falls inside any
// segment of this subtable.
func (c *cmapFormat4) lookup(r rune) (uint16, bool) {
	if r < 0 || r > 0xFFFF {
		return 0, false
	}
	ru := uint16(r)
	n := len(c.startCode)
	for i := 0; i < n; i++ {
		if c.startCode[i] <= ru && ru <= c.endCode[i] {
			if c.idRangeOffset[i] == 0 {
				return uint16(c.idDelta[i]) + ru, true
			}
			index := int(c.idRangeOffset[i]/2) + int(ru-c.startCode[i]) - (n - i)
			if index < 0 || index >= len(c.glyphIDArray) {
				return 0, false
			}
			id := c.glyphIDArray[index]
			if id == 0 {
				return 0, false
			}
			return id + uint16(c.idDelta[i]), true
		}
	}
	return 0, false
}

// CmapTable is the parsed 'cmap' table, restricted to the Unicode
// platform's format-4 subtable — the minimum needed to map BMP codepoints
// to glyph indices.
type CmapTable struct {
	format4 *cmapFormat4
}

const (
	cmapPlatformUnicode = 0
	cmapPlatformWindows = 3
	cmapEncodingWinBMP  = 1
)

func parseCmap(b []byte, numGlyphs uint16) (*CmapTable, error) {
	if len(b) < 4 {
		return nil, ErrBadTable
	}
	r := parse.NewBinaryReader(b)
	if r.ReadUint16() != 0 {
		return nil, ErrBadTable
	}
	numTables := r.ReadUint16()
	if uint32(len(b)) < 4+8*uint32(numTables) {
		return nil, ErrBadTable
	}

	var best struct {
		offset uint32
		found  bool
	}
	for i := 0; i < int(numTables); i++ {
		platformID := r.ReadUint16()
		encodingID := r.ReadUint16()
		offset := r.ReadUint32()
		isUnicode := platformID == cmapPlatformUnicode ||
			(platformID == cmapPlatformWindows && encodingID == cmapEncodingWinBMP)
		if isUnicode && uint32(len(b)) > offset {
			sub := parse.NewBinaryReader(b[offset:])
			if sub.ReadUint16() == 4 {
				best.offset = offset
				best.found = true
			}
		}
	}
	if !best.found {
		return &CmapTable{}, nil
	}

	sub := b[best.offset:]
	sr := parse.NewBinaryReader(sub)
	if sr.ReadUint16() != 4 {
		return nil, ErrBadTable
	}
	_ = sr.ReadUint16() // length
	_ = sr.ReadUint16() // language
	segCountX2 := sr.ReadUint16()
	if segCountX2 == 0 || segCountX2%2 != 0 {
		return nil, ErrBadTable
	}
	segCount := int(segCountX2 / 2)
	_ = sr.ReadUint16() // searchRange
	_ = sr.ReadUint16() // entrySelector
	_ = sr.ReadUint16() // rangeShift

	f4 := &cmapFormat4{
		endCode:       make([]uint16, segCount),
		startCode:     make([]uint16, segCount),
		idDelta:       make([]int16, segCount),
		idRangeOffset: make([]uint16, segCount),
	}
	for i := range f4.endCode {
		f4.endCode[i] = sr.ReadUint16()
	}
	_ = sr.ReadUint16() // reservedPad
	for i := range f4.startCode {
		f4.startCode[i] = sr.ReadUint16()
	}
	for i := range f4.idDelta {
		f4.idDelta[i] = sr.ReadInt16()
	}
	idRangeOffsetBase := sr.Pos()
	for i := range f4.idRangeOffset {
		f4.idRangeOffset[i] = sr.ReadUint16()
	}
	remaining := (uint32(len(sub)) - idRangeOffsetBase - 2*uint32(segCount)) / 2
	f4.glyphIDArray = make([]uint16, remaining)
	for i := range f4.glyphIDArray {
		id := sr.ReadUint16()
		if id >= numGlyphs {
			id = 0
		}
		f4.glyphIDArray[i] = id
	}
	return &CmapTable{format4: f4}, nil
}

// GlyphIndex returns the glyph id mapped to codepoint r, or 0 (.notdef) if
// no mapping exists.
func (c *CmapTable) GlyphIndex(r rune) uint16 {
	if c.format4 == nil {
		return 0
	}
	if id, ok := c.format4.lookup(r); ok {
		return id
	}
	return 0
}
