package ttf

import (
	"github.com/tdewolff/parse/v2"
	"golang.org/x/text/encoding/unicode"
)

// HeadTable is the parsed 'head' table: font-wide metrics and the loca
// table's entry width.
type HeadTable struct {
	UnitsPerEm       uint16
	XMin, YMin       int16
	XMax, YMax       int16
	IndexToLocFormat int16 // 0: 16-bit half-offsets, 1: 32-bit offsets
}

const headMagic = 0x5F0F3CF5

func parseHead(b []byte) (*HeadTable, error) {
	if len(b) < 54 {
		return nil, ErrBadTable
	}
	r := parse.NewBinaryReader(b)
	_ = r.ReadUint16() // majorVersion
	_ = r.ReadUint16() // minorVersion
	_ = r.ReadUint32() // fontRevision
	_ = r.ReadUint32() // checksumAdjustment
	if r.ReadUint32() != headMagic {
		return nil, ErrBadTable
	}
	_ = r.ReadUint16() // flags
	unitsPerEm := r.ReadUint16()
	_ = r.ReadUint64() // created
	_ = r.ReadUint64() // modified
	xMin := r.ReadInt16()
	yMin := r.ReadInt16()
	xMax := r.ReadInt16()
	yMax := r.ReadInt16()
	_ = r.ReadUint16() // macStyle
	_ = r.ReadUint16() // lowestRecPPEM
	_ = r.ReadInt16()  // fontDirectionHint
	locaFormat := r.ReadInt16()
	if locaFormat != 0 && locaFormat != 1 {
		return nil, ErrBadTable
	}
	return &HeadTable{
		UnitsPerEm:       unitsPerEm,
		XMin:             xMin,
		YMin:             yMin,
		XMax:             xMax,
		YMax:             yMax,
		IndexToLocFormat: locaFormat,
	}, nil
}

// MaxpTable is the parsed 'maxp' table. Only NumGlyphs is retained; this
// package never walks the hinting-program resource limits the rest of the
// table describes.
type MaxpTable struct {
	NumGlyphs uint16
}

func parseMaxp(b []byte) (*MaxpTable, error) {
	if len(b) < 6 {
		return nil, ErrBadTable
	}
	r := parse.NewBinaryReader(b)
	_ = r.ReadUint32() // version
	return &MaxpTable{NumGlyphs: r.ReadUint16()}, nil
}

// HheaTable is the parsed 'hhea' table.
type HheaTable struct {
	Ascender         int16
	Descender        int16
	LineGap          int16
	NumberOfHMetrics uint16
}

func parseHhea(b []byte, numGlyphs uint16) (*HheaTable, error) {
	if len(b) != 36 {
		return nil, ErrBadTable
	}
	r := parse.NewBinaryReader(b)
	_ = r.ReadUint16() // majorVersion
	_ = r.ReadUint16() // minorVersion
	ascender := r.ReadInt16()
	descender := r.ReadInt16()
	lineGap := r.ReadInt16()
	_ = r.ReadUint16() // advanceWidthMax
	_ = r.ReadInt16()  // minLeftSideBearing
	_ = r.ReadInt16()  // minRightSideBearing
	_ = r.ReadInt16()  // xMaxExtent
	_ = r.ReadInt16()  // caretSlopeRise
	_ = r.ReadInt16()  // caretSlopeRun
	_ = r.ReadInt16()  // caretOffset
	_ = r.ReadInt16()  // reserved
	_ = r.ReadInt16()  // reserved
	_ = r.ReadInt16()  // reserved
	_ = r.ReadInt16()  // reserved
	_ = r.ReadInt16()  // metricDataFormat
	numberOfHMetrics := r.ReadUint16()
	if numberOfHMetrics == 0 || numGlyphs < numberOfHMetrics {
		return nil, ErrBadTable
	}
	return &HheaTable{
		Ascender:         ascender,
		Descender:        descender,
		LineGap:          lineGap,
		NumberOfHMetrics: numberOfHMetrics,
	}, nil
}

// hmtxMetric is one long horizontal metric record.
type hmtxMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// HmtxTable is the parsed 'hmtx' table: advance widths and left-side
// bearings per glyph. Glyph ids beyond NumberOfHMetrics reuse the last
// advance width with their own left-side bearing, per the TrueType spec.
type HmtxTable struct {
	metrics          []hmtxMetric
	leftSideBearings []int16
}

func parseHmtx(b []byte, numberOfHMetrics, numGlyphs uint16) (*HmtxTable, error) {
	wantLen := 4*uint32(numberOfHMetrics) + 2*uint32(numGlyphs-numberOfHMetrics)
	if uint32(len(b)) != wantLen {
		return nil, ErrBadTable
	}
	t := &HmtxTable{
		metrics:          make([]hmtxMetric, numberOfHMetrics),
		leftSideBearings: make([]int16, numGlyphs-numberOfHMetrics),
	}
	r := parse.NewBinaryReader(b)
	for i := range t.metrics {
		t.metrics[i].AdvanceWidth = r.ReadUint16()
		t.metrics[i].LeftSideBearing = r.ReadInt16()
	}
	for i := range t.leftSideBearings {
		t.leftSideBearings[i] = r.ReadInt16()
	}
	return t, nil
}

// Advance returns the horizontal advance width of glyphID.
func (t *HmtxTable) Advance(glyphID uint16) uint16 {
	if int(glyphID) >= len(t.metrics) {
		glyphID = uint16(len(t.metrics)) - 1
	}
	return t.metrics[glyphID].AdvanceWidth
}

// LeftSideBearing returns the left-side bearing of glyphID.
func (t *HmtxTable) LeftSideBearing(glyphID uint16) int16 {
	if int(glyphID) >= len(t.metrics) {
		return t.leftSideBearings[int(glyphID)-len(t.metrics)]
	}
	return t.metrics[glyphID].LeftSideBearing
}

// NameTable holds the full human-readable font name (platform 3 (Windows),
// encoding 1 (Unicode BMP), name id 4), decoded from UTF-16BE. Any other
// record is ignored.
type NameTable struct {
	FullName string
}

const (
	platformWindows       = 3
	encodingWindowsUCS2   = 1
	nameIDFullFontName    = 4
	windowsUnicodeLangEnU = 0x0409
)

func parseName(b []byte) (*NameTable, error) {
	if len(b) < 6 {
		return nil, ErrBadTable
	}
	r := parse.NewBinaryReader(b)
	_ = r.ReadUint16() // format
	count := r.ReadUint16()
	storageOffset := r.ReadUint16()
	if uint32(len(b)) < 6+12*uint32(count) || uint16(len(b)) < storageOffset {
		return nil, ErrBadTable
	}

	t := &NameTable{}
	decoder := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	for i := 0; i < int(count); i++ {
		platformID := r.ReadUint16()
		encodingID := r.ReadUint16()
		_ = r.ReadUint16() // language
		nameID := r.ReadUint16()
		length := r.ReadUint16()
		offset := r.ReadUint16()
		if uint16(len(b))-storageOffset < offset || uint16(len(b))-storageOffset-offset < length {
			return nil, ErrBadTable
		}
		if platformID != platformWindows || encodingID != encodingWindowsUCS2 || nameID != nameIDFullFontName {
			continue
		}
		raw := b[storageOffset+offset : storageOffset+offset+length]
		decoded, err := decoder.Bytes(raw)
		if err == nil {
			t.FullName = string(decoded)
		}
	}
	return t, nil
}
