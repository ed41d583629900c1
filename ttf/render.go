package ttf

import "golang.org/x/image/math/fixed"

// maxCompoundDepth bounds how many levels of compound-glyph component
// references this package will follow before giving up — a malicious or
// corrupt font can make a glyph reference itself, directly or through a
// cycle of compounds.
const maxCompoundDepth = 10

// RenderedGlyph is one glyph's resolved outline and advance metrics, ready
// for a caller to lay out.
type RenderedGlyph struct {
	GlyphID         uint16
	Path            []PathOp
	Advance         uint16
	LeftSideBearing int16
}

// compoundFrame is one level of an in-progress compound glyph expansion: the
// component iterator for the compound currently being walked, plus the
// (dx, dy) offset accumulated from its ancestors.
type compoundFrame struct {
	it     *CompoundGlyphIterator
	offX   int16
	offY   int16
}

// RenderGlyph resolves glyphID to its final flattened path, walking
// compound-glyph component references iteratively with an explicit stack of
// suspended component iterators. Component transforms (scale/2x2) are
// recognized but not applied to the outline; only the translation offsets
// are composed.
func (f *Font) RenderGlyph(glyphID uint16) (*RenderedGlyph, error) {
	g, err := f.Glyph(glyphID)
	if err != nil {
		return nil, err
	}

	rg := &RenderedGlyph{
		GlyphID:         glyphID,
		Advance:         f.Hmtx.Advance(glyphID),
		LeftSideBearing: f.Hmtx.LeftSideBearing(glyphID),
	}

	switch g.Kind {
	case GlyphEmpty:
		return rg, nil
	case GlyphSimple:
		rg.Path = ExtractPath(g)
		return rg, nil
	}

	var stack []compoundFrame
	stack = append(stack, compoundFrame{it: g.Components()})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		comp, ok := top.it.Next()
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}

		dx, dy := top.offX+comp.DX, top.offY+comp.DY
		sub, err := f.Glyph(comp.GlyphID)
		if err != nil {
			return nil, err
		}
		switch sub.Kind {
		case GlyphEmpty:
			// contributes nothing
		case GlyphSimple:
			for _, op := range ExtractPath(sub) {
				rg.Path = append(rg.Path, translateOp(op, dx, dy))
			}
		case GlyphCompound:
			if len(stack) >= maxCompoundDepth {
				return nil, ErrBadTable
			}
			stack = append(stack, compoundFrame{it: sub.Components(), offX: dx, offY: dy})
		}
	}
	return rg, nil
}

func translateOp(op PathOp, dx, dy int16) PathOp {
	dX, dY := fixed.Int26_6(dx)<<6, fixed.Int26_6(dy)<<6
	out := PathOp{
		Kind: op.Kind,
		To:   fixed.Point26_6{X: op.To.X + dX, Y: op.To.Y + dY},
	}
	if op.Kind == OpQuadBezTo {
		out.Control = fixed.Point26_6{X: op.Control.X + dX, Y: op.Control.Y + dY}
	}
	return out
}

// RenderString walks a sequence of Unicode codepoints and resolves each to
// its rendered glyph in order, falling back to the .notdef glyph (id 0) for
// any codepoint absent from cmap.
func (f *Font) RenderString(text []rune) ([]*RenderedGlyph, error) {
	out := make([]*RenderedGlyph, 0, len(text))
	for _, r := range text {
		id := f.Cmap.GlyphIndex(r)
		rg, err := f.RenderGlyph(id)
		if err != nil {
			return nil, err
		}
		out = append(out, rg)
	}
	return out, nil
}
