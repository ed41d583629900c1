package ttf

import "encoding/binary"

// locaTable resolves a glyph id to its byte range inside the glyf table.
// Format 0 stores half-offsets (scaled by 2); format 1 stores raw 32-bit
// offsets.
type locaTable struct {
	format int16
	data   []byte
}

func parseLoca(b []byte, format int16, numGlyphs uint16) (*locaTable, error) {
	entries := uint32(numGlyphs) + 1
	if format == 0 {
		if uint32(len(b)) != 2*entries {
			return nil, ErrBadTable
		}
	} else {
		if uint32(len(b)) != 4*entries {
			return nil, ErrBadTable
		}
	}
	return &locaTable{format: format, data: b}, nil
}

// offset returns the byte offset of glyphID's entry in glyf, and whether
// glyphID is in range (glyphID == numGlyphs is valid: it names the end of
// the last glyph's data).
func (l *locaTable) offset(glyphID uint16) (uint32, bool) {
	if l.format == 0 {
		idx := int(glyphID) * 2
		if idx+2 > len(l.data) {
			return 0, false
		}
		return 2 * uint32(binary.BigEndian.Uint16(l.data[idx:])), true
	}
	idx := int(glyphID) * 4
	if idx+4 > len(l.data) {
		return 0, false
	}
	return binary.BigEndian.Uint32(l.data[idx:]), true
}

// Range returns the [start, end) byte range of glyphID within the glyf
// table.
func (l *locaTable) Range(glyphID uint16) (start, end uint32, ok bool) {
	start, ok1 := l.offset(glyphID)
	end, ok2 := l.offset(glyphID + 1)
	if !ok1 || !ok2 || end < start {
		return 0, 0, false
	}
	return start, end, true
}
