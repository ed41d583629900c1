package ttf

import (
	"encoding/binary"

	"github.com/tdewolff/parse/v2"
)

// GlyphKind discriminates the three shapes a glyf table entry can take: a
// contour outline, a composition of other glyphs, or an empty glyph with no
// outline (e.g. the space character).
type GlyphKind int

const (
	GlyphEmpty GlyphKind = iota
	GlyphSimple
	GlyphCompound
)

// Metrics is a glyph's bounding box, read verbatim from its glyf header.
type Metrics struct {
	MinX, MinY int16
	MaxX, MaxY int16
}

// simpleGlyphData holds the raw, still-compressed byte regions of a simple
// glyph: the flag array (run-length encoded) and the variable-width x/y
// coordinate delta streams. Nothing here is decoded until a
// GlyphPointIterator walks it.
type simpleGlyphData struct {
	endPoints []uint16
	flags     []byte
	xCoords   []byte
	yCoords   []byte
	numPoints int
}

// compoundGlyphData holds the raw component stream of a compound glyph,
// starting immediately after the 10-byte glyph header.
type compoundGlyphData struct {
	data []byte
}

// Glyph is one decoded (but not yet rasterized) glyf table entry.
type Glyph struct {
	Kind     GlyphKind
	Metrics  Metrics
	simple   *simpleGlyphData
	compound *compoundGlyphData
}

// Points returns a lazy iterator over a simple glyph's points. It panics if
// called on a non-simple glyph.
func (g *Glyph) Points() *GlyphPointIterator {
	if g.Kind != GlyphSimple {
		panic("ttf: Points called on a non-simple glyph")
	}
	return &GlyphPointIterator{d: g.simple}
}

// Components returns a lazy iterator over a compound glyph's components.
// It panics if called on a non-compound glyph.
func (g *Glyph) Components() *CompoundGlyphIterator {
	if g.Kind != GlyphCompound {
		panic("ttf: Components called on a non-compound glyph")
	}
	return &CompoundGlyphIterator{r: parse.NewBinaryReader(g.compound.data)}
}

// Glyph decodes glyphID's entry out of the glyf table, using the loca
// table to locate its byte range.
func (f *Font) Glyph(glyphID uint16) (*Glyph, error) {
	start, end, ok := f.loca.Range(glyphID)
	if !ok || end > uint32(len(f.glyf)) {
		return nil, ErrBadTable
	}
	data := f.glyf[start:end]
	if len(data) == 0 {
		return &Glyph{Kind: GlyphEmpty}, nil
	}
	if len(data) < 10 {
		return nil, ErrUnexpectedEOF
	}

	r := parse.NewBinaryReader(data)
	numContours := r.ReadInt16()
	metrics := Metrics{
		MinX: r.ReadInt16(), MinY: r.ReadInt16(),
		MaxX: r.ReadInt16(), MaxY: r.ReadInt16(),
	}
	if numContours < 0 {
		return &Glyph{Kind: GlyphCompound, Metrics: metrics, compound: &compoundGlyphData{data: data[10:]}}, nil
	}
	return parseSimpleGlyph(r, metrics, int(numContours))
}

const (
	flagOnCurve          = 0x01
	flagXShort           = 0x02
	flagYShort           = 0x04
	flagRepeat           = 0x08
	flagXSameOrPositive  = 0x10
	flagYSameOrPositive  = 0x20
)

func coordSizeX(flag byte) uint32 {
	switch {
	case flag&flagXShort != 0:
		return 1
	case flag&flagXSameOrPositive != 0:
		return 0
	default:
		return 2
	}
}

func coordSizeY(flag byte) uint32 {
	switch {
	case flag&flagYShort != 0:
		return 1
	case flag&flagYSameOrPositive != 0:
		return 0
	default:
		return 2
	}
}

// parseSimpleGlyph reads the contour end-points and instruction stream,
// then scans the flag array once (without decoding coordinates) to learn
// its compressed byte length and the resulting x/y coordinate byte widths.
// The flag array is run-length compressed: a repeat bit lets one flag byte
// stand in for several consecutive identical points.
func parseSimpleGlyph(r *parse.BinaryReader, metrics Metrics, numContours int) (*Glyph, error) {
	if r.Len() < 2*uint32(numContours)+2 {
		return nil, ErrUnexpectedEOF
	}
	endPoints := make([]uint16, numContours)
	for i := range endPoints {
		endPoints[i] = r.ReadUint16()
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = int(endPoints[numContours-1]) + 1
	}

	instrLen := r.ReadUint16()
	if r.Len() < uint32(instrLen) {
		return nil, ErrUnexpectedEOF
	}
	_ = r.ReadBytes(uint32(instrLen))

	flagsStart := r.Pos()
	remaining := numPoints
	var flagBytes, xSize, ySize uint32
	for remaining > 0 {
		if r.Len() < 1 {
			return nil, ErrUnexpectedEOF
		}
		flag := r.ReadUint8()
		flagBytes++
		remaining--
		n := uint32(1)
		if flag&flagRepeat != 0 {
			if r.Len() < 1 {
				return nil, ErrUnexpectedEOF
			}
			repeat := r.ReadUint8()
			flagBytes++
			n += uint32(repeat)
			remaining -= int(repeat)
		}
		if remaining < 0 {
			return nil, ErrBadTable
		}
		xSize += n * coordSizeX(flag)
		ySize += n * coordSizeY(flag)
	}

	r.Seek(flagsStart)
	flagsRaw := r.ReadBytes(flagBytes)
	if r.Len() < xSize+ySize {
		return nil, ErrUnexpectedEOF
	}
	xRaw := r.ReadBytes(xSize)
	yRaw := r.ReadBytes(ySize)

	return &Glyph{
		Kind:    GlyphSimple,
		Metrics: metrics,
		simple: &simpleGlyphData{
			endPoints: endPoints,
			flags:     flagsRaw,
			xCoords:   xRaw,
			yCoords:   yRaw,
			numPoints: numPoints,
		},
	}, nil
}

// Point is one decoded outline point of a simple glyph.
type Point struct {
	X, Y          int16
	OnCurve       bool
	LastOfContour bool
}

// GlyphPointIterator lazily expands a simple glyph's run-length-compressed
// flag stream and variable-width coordinate deltas, one point at a time.
// It is a finite, one-shot sequence: once exhausted it cannot be restarted.
type GlyphPointIterator struct {
	d *simpleGlyphData

	flagPos, xPos, yPos int
	curFlag             byte
	repeatsLeft         int

	x, y       int16
	emitted    int
	contourIdx int
}

// Next returns the next point of the glyph, or ok=false once every point
// named by the contour end-points has been emitted.
func (it *GlyphPointIterator) Next() (p Point, ok bool) {
	if it.emitted >= it.d.numPoints {
		return Point{}, false
	}
	if it.repeatsLeft == 0 {
		it.curFlag = it.d.flags[it.flagPos]
		it.flagPos++
		if it.curFlag&flagRepeat != 0 {
			it.repeatsLeft = int(it.d.flags[it.flagPos])
			it.flagPos++
		}
	} else {
		it.repeatsLeft--
	}
	flag := it.curFlag

	switch {
	case flag&flagXShort != 0:
		d := int16(it.d.xCoords[it.xPos])
		it.xPos++
		if flag&flagXSameOrPositive == 0 {
			d = -d
		}
		it.x += d
	case flag&flagXSameOrPositive != 0:
		// zero delta: reuse previous x
	default:
		it.x += int16(binary.BigEndian.Uint16(it.d.xCoords[it.xPos:]))
		it.xPos += 2
	}

	switch {
	case flag&flagYShort != 0:
		d := int16(it.d.yCoords[it.yPos])
		it.yPos++
		if flag&flagYSameOrPositive == 0 {
			d = -d
		}
		it.y += d
	case flag&flagYSameOrPositive != 0:
		// zero delta: reuse previous y
	default:
		it.y += int16(binary.BigEndian.Uint16(it.d.yCoords[it.yPos:]))
		it.yPos += 2
	}

	idx := it.emitted
	it.emitted++
	last := it.contourIdx < len(it.d.endPoints) && int(it.d.endPoints[it.contourIdx]) == idx
	if last {
		it.contourIdx++
	}
	return Point{X: it.x, Y: it.y, OnCurve: flag&flagOnCurve != 0, LastOfContour: last}, true
}

// Component flag bits, from a compound glyph's per-component header.
const (
	componentArgsAreWords   = 0x0001
	componentArgsAreXY      = 0x0002
	componentHaveScale      = 0x0008
	componentMoreComponents = 0x0020
	componentHaveXYScale    = 0x0040
	componentHave2x2        = 0x0080
)

// Component is one entry of a compound glyph's component stream.
type Component struct {
	GlyphID      uint16
	DX, DY       int16
	HasTransform bool
}

// CompoundGlyphIterator lazily walks a compound glyph's component stream,
// terminating on the first component whose MORE_COMPONENTS bit is clear.
type CompoundGlyphIterator struct {
	r    *parse.BinaryReader
	done bool
}

// Next returns the next component, or ok=false once the component with a
// clear MORE_COMPONENTS bit has been returned.
func (it *CompoundGlyphIterator) Next() (c Component, ok bool) {
	if it.done || it.r.Len() < 4 {
		return Component{}, false
	}
	flags := it.r.ReadUint16()
	glyphID := it.r.ReadUint16()
	if flags&componentMoreComponents == 0 {
		it.done = true
	}

	argsAreWords := flags&componentArgsAreWords != 0
	argsAreXY := flags&componentArgsAreXY != 0
	var dx, dy int16
	switch {
	case !argsAreWords && !argsAreXY:
		dx, dy = int16(it.r.ReadUint8()), int16(it.r.ReadUint8())
	case !argsAreWords && argsAreXY:
		dx, dy = int16(it.r.ReadInt8()), int16(it.r.ReadInt8())
	case argsAreWords && !argsAreXY:
		dx, dy = int16(it.r.ReadUint16()), int16(it.r.ReadUint16())
	default:
		dx, dy = it.r.ReadInt16(), it.r.ReadInt16()
	}

	hasTransform := false
	switch {
	case flags&componentHaveScale != 0:
		_ = it.r.ReadInt16()
		hasTransform = true
	case flags&componentHaveXYScale != 0:
		_, _ = it.r.ReadInt16(), it.r.ReadInt16()
		hasTransform = true
	case flags&componentHave2x2 != 0:
		_, _, _, _ = it.r.ReadInt16(), it.r.ReadInt16(), it.r.ReadInt16(), it.r.ReadInt16()
		hasTransform = true
	}

	return Component{GlyphID: glyphID, DX: dx, DY: dy, HasTransform: hasTransform}, true
}
