package ttf

import (
	"bytes"
	"encoding/binary"
	"sort"
	"testing"
)

// buildFont assembles a minimal sfnt binary from a tag -> table-bytes map,
// laying out the directory in tag-sorted order. It does not compute table
// checksums; this package never verifies them.
func buildFont(scalerType uint32, tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, scalerType)
	binary.Write(buf, binary.BigEndian, uint16(len(tags)))
	binary.Write(buf, binary.BigEndian, uint16(0)) // searchRange
	binary.Write(buf, binary.BigEndian, uint16(0)) // entrySelector
	binary.Write(buf, binary.BigEndian, uint16(0)) // rangeShift

	offset := uint32(12 + 16*len(tags))
	var body bytes.Buffer
	for _, tag := range tags {
		data := tables[tag]
		buf.WriteString(tag)
		binary.Write(buf, binary.BigEndian, uint32(0)) // checksum
		binary.Write(buf, binary.BigEndian, offset)
		binary.Write(buf, binary.BigEndian, uint32(len(data)))
		body.Write(data)
		offset += uint32(len(data))
	}
	buf.Write(body.Bytes())
	return buf.Bytes()
}

func buildHead(unitsPerEm uint16, locaFormat int16) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, uint16(1))         // majorVersion
	binary.Write(buf, binary.BigEndian, uint16(0))         // minorVersion
	binary.Write(buf, binary.BigEndian, uint32(0))         // fontRevision
	binary.Write(buf, binary.BigEndian, uint32(0))         // checksumAdjustment
	binary.Write(buf, binary.BigEndian, uint32(headMagic)) // magicNumber
	binary.Write(buf, binary.BigEndian, uint16(0))         // flags
	binary.Write(buf, binary.BigEndian, unitsPerEm)
	binary.Write(buf, binary.BigEndian, uint64(0)) // created
	binary.Write(buf, binary.BigEndian, uint64(0)) // modified
	binary.Write(buf, binary.BigEndian, int16(0))  // xMin
	binary.Write(buf, binary.BigEndian, int16(0))  // yMin
	binary.Write(buf, binary.BigEndian, int16(20)) // xMax
	binary.Write(buf, binary.BigEndian, int16(10)) // yMax
	binary.Write(buf, binary.BigEndian, uint16(0)) // macStyle
	binary.Write(buf, binary.BigEndian, uint16(0)) // lowestRecPPEM
	binary.Write(buf, binary.BigEndian, int16(0))  // fontDirectionHint
	binary.Write(buf, binary.BigEndian, locaFormat)
	binary.Write(buf, binary.BigEndian, int16(0)) // glyphDataFormat
	return buf.Bytes()
}

func buildMaxp(numGlyphs uint16) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, uint32(0x00010000))
	binary.Write(buf, binary.BigEndian, numGlyphs)
	return buf.Bytes()
}

func buildHhea(numberOfHMetrics uint16) []byte {
	buf := new(bytes.Buffer)
	for i := 0; i < 2; i++ {
		binary.Write(buf, binary.BigEndian, uint16(0)) // major/minorVersion
	}
	binary.Write(buf, binary.BigEndian, int16(800)) // ascender
	binary.Write(buf, binary.BigEndian, int16(-200)) // descender
	binary.Write(buf, binary.BigEndian, int16(0))   // lineGap
	for i := 0; i < 11; i++ {
		binary.Write(buf, binary.BigEndian, int16(0))
	}
	binary.Write(buf, binary.BigEndian, int16(0)) // metricDataFormat
	binary.Write(buf, binary.BigEndian, numberOfHMetrics)
	return buf.Bytes()
}

func buildHmtx(advances []uint16, lsbs []int16) []byte {
	buf := new(bytes.Buffer)
	for i, a := range advances {
		binary.Write(buf, binary.BigEndian, a)
		binary.Write(buf, binary.BigEndian, lsbs[i])
	}
	return buf.Bytes()
}

func buildLoca(offsets []uint32) []byte {
	buf := new(bytes.Buffer)
	for _, o := range offsets {
		binary.Write(buf, binary.BigEndian, uint16(o/2))
	}
	return buf.Bytes()
}

// buildCmap builds a format-4 cmap mapping a single codepoint to glyphID,
// terminated by the mandatory 0xFFFF sentinel segment.
func buildCmap(codepoint rune, glyphID uint16) []byte {
	sub := new(bytes.Buffer)
	binary.Write(sub, binary.BigEndian, uint16(4)) // format
	binary.Write(sub, binary.BigEndian, uint16(32)) // length (informational)
	binary.Write(sub, binary.BigEndian, uint16(0)) // language
	binary.Write(sub, binary.BigEndian, uint16(4)) // segCountX2 (2 segments)
	binary.Write(sub, binary.BigEndian, uint16(0)) // searchRange
	binary.Write(sub, binary.BigEndian, uint16(0)) // entrySelector
	binary.Write(sub, binary.BigEndian, uint16(0)) // rangeShift
	binary.Write(sub, binary.BigEndian, uint16(codepoint))
	binary.Write(sub, binary.BigEndian, uint16(0xFFFF))
	binary.Write(sub, binary.BigEndian, uint16(0)) // reservedPad
	binary.Write(sub, binary.BigEndian, uint16(codepoint))
	binary.Write(sub, binary.BigEndian, uint16(0xFFFF))
	binary.Write(sub, binary.BigEndian, int16(glyphID)-int16(codepoint))
	binary.Write(sub, binary.BigEndian, int16(1))
	binary.Write(sub, binary.BigEndian, uint16(0)) // idRangeOffset
	binary.Write(sub, binary.BigEndian, uint16(0)) // idRangeOffset

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, uint16(0)) // version
	binary.Write(buf, binary.BigEndian, uint16(1)) // numTables
	binary.Write(buf, binary.BigEndian, uint16(platformWindows))
	binary.Write(buf, binary.BigEndian, uint16(1)) // encodingID (BMP)
	binary.Write(buf, binary.BigEndian, uint32(12))
	buf.Write(sub.Bytes())
	return buf.Bytes()
}

// triangleGlyph is a single-contour, three-point, all-on-curve simple glyph:
// (0,0) -> (10,0) -> (5,10).
func triangleGlyph() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, int16(1))  // numContours
	binary.Write(buf, binary.BigEndian, int16(0))  // xMin
	binary.Write(buf, binary.BigEndian, int16(0))  // yMin
	binary.Write(buf, binary.BigEndian, int16(10)) // xMax
	binary.Write(buf, binary.BigEndian, int16(10)) // yMax
	binary.Write(buf, binary.BigEndian, uint16(2)) // endPoints[0]
	binary.Write(buf, binary.BigEndian, uint16(0)) // instructionLength
	buf.Write([]byte{0x37, 0x37, 0x27})            // flags
	buf.Write([]byte{0, 10, 5})                    // xCoords
	buf.Write([]byte{0, 0, 10})                    // yCoords
	buf.WriteByte(0) // pad to even length, required by format-0 loca half-offsets
	return buf.Bytes()
}

func buildTestFont() []byte {
	glyf := new(bytes.Buffer)
	glyf.Write(nil) // glyph 0: .notdef, empty
	glyphOneStart := glyf.Len()
	glyf.Write(triangleGlyph())

	tables := map[string][]byte{
		"head": buildHead(1000, 0),
		"maxp": buildMaxp(2),
		"hhea": buildHhea(2),
		"hmtx": buildHmtx([]uint16{0, 600}, []int16{0, 0}),
		"loca": buildLoca([]uint32{0, uint32(glyphOneStart), uint32(glyf.Len())}),
		"glyf": glyf.Bytes(),
		"cmap": buildCmap('A', 1),
	}
	return buildFont(scalerTypeTrueType, tables)
}

func TestParseRejectsUnsupportedScalerType(t *testing.T) {
	data := buildFont(0x00020000, map[string][]byte{
		"head": buildHead(1000, 0),
		"maxp": buildMaxp(1),
		"hhea": buildHhea(1),
		"hmtx": buildHmtx([]uint16{0}, []int16{0}),
		"loca": buildLoca([]uint32{0, 0}),
		"glyf": nil,
		"cmap": buildCmap('A', 0),
	})
	_, err := Parse(data)
	if err != ErrUnsupportedFormat {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestParseRejectsMissingMandatoryTable(t *testing.T) {
	data := buildFont(scalerTypeTrueType, map[string][]byte{
		"head": buildHead(1000, 0),
	})
	_, err := Parse(data)
	if err != ErrMissingTable {
		t.Fatalf("got %v, want ErrMissingTable", err)
	}
}

func TestParseFullFont(t *testing.T) {
	f, err := Parse(buildTestFont())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	notdef, err := f.Glyph(0)
	if err != nil {
		t.Fatalf("Glyph(0): %v", err)
	}
	if notdef.Kind != GlyphEmpty {
		t.Errorf("glyph 0 kind = %v, want GlyphEmpty", notdef.Kind)
	}

	g, err := f.Glyph(1)
	if err != nil {
		t.Fatalf("Glyph(1): %v", err)
	}
	if g.Kind != GlyphSimple {
		t.Fatalf("glyph 1 kind = %v, want GlyphSimple", g.Kind)
	}

	var pts []Point
	it := g.Points()
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		pts = append(pts, p)
	}
	if len(pts) != 3 {
		t.Fatalf("got %d points, want 3", len(pts))
	}
	lastCount := 0
	for _, p := range pts {
		if p.LastOfContour {
			lastCount++
		}
	}
	if lastCount != 1 {
		t.Errorf("got %d last-of-contour markers, want 1 (one contour)", lastCount)
	}
	if !pts[2].LastOfContour {
		t.Errorf("expected the final point to close the contour")
	}

	if id := f.Cmap.GlyphIndex('A'); id != 1 {
		t.Errorf("GlyphIndex('A') = %d, want 1", id)
	}
	if id := f.Cmap.GlyphIndex('Z'); id != 0 {
		t.Errorf("GlyphIndex('Z') = %d, want 0 (.notdef fallback)", id)
	}
}

func TestExtractPathEmptyGlyphYieldsEmptyPath(t *testing.T) {
	g := &Glyph{Kind: GlyphSimple, simple: &simpleGlyphData{numPoints: 0}}
	if ops := ExtractPath(g); len(ops) != 0 {
		t.Errorf("got %d ops for an empty glyph, want 0", len(ops))
	}
}

func TestExtractPathTriangle(t *testing.T) {
	g := &Glyph{
		Kind: GlyphSimple,
		simple: &simpleGlyphData{
			endPoints: []uint16{2},
			flags:     []byte{0x37, 0x37, 0x27},
			xCoords:   []byte{0, 10, 5},
			yCoords:   []byte{0, 0, 10},
			numPoints: 3,
		},
	}
	ops := ExtractPath(g)
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3 (MoveTo + 2 LineTo)", len(ops))
	}
	if ops[0].Kind != OpMoveTo || ops[1].Kind != OpLineTo || ops[2].Kind != OpLineTo {
		t.Errorf("got kinds %v, %v, %v, want MoveTo, LineTo, LineTo", ops[0].Kind, ops[1].Kind, ops[2].Kind)
	}
}
