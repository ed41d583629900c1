package ttf

import "golang.org/x/image/math/fixed"

// PathOpKind discriminates the three operations a glyph outline is reduced
// to: a contour's start, a straight edge, or a quadratic curve.
type PathOpKind int

const (
	OpMoveTo PathOpKind = iota
	OpLineTo
	OpQuadBezTo
)

// PathOp is one operation of a glyph's path-operation stream. Control is
// only meaningful for OpQuadBezTo.
type PathOp struct {
	Kind    PathOpKind
	Control fixed.Point26_6
	To      fixed.Point26_6
}

func pt(x, y int16) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x) << 6, Y: fixed.Int26_6(y) << 6}
}

// ExtractPath walks a simple glyph's point sequence, contour by contour,
// and emits its path-operation stream: a MoveTo at the start of each
// contour, LineTo between consecutive on-curve points, and QuadBezTo when
// an off-curve point is encountered, with a synthetic on-curve midpoint
// inserted whenever two off-curve points appear consecutively, including
// across the contour's closing segment. A glyph with zero contours yields
// an empty stream.
func ExtractPath(g *Glyph) []PathOp {
	if g.Kind != GlyphSimple {
		panic("ttf: ExtractPath called on a non-simple glyph")
	}

	points := make([]Point, 0, g.simple.numPoints)
	it := g.Points()
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		points = append(points, p)
	}

	var ops []PathOp
	i := 0
	for i < len(points) {
		j := i
		first := true
		firstOff := false
		prevOff := false
		var startX, startY int16

		for {
			p := points[i]
			switch {
			case first:
				switch {
				case p.OnCurve:
					startX, startY = p.X, p.Y
					ops = append(ops, PathOp{Kind: OpMoveTo, To: pt(startX, startY)})
					first = false
					prevOff = false
				case !prevOff:
					firstOff = true
					prevOff = true
				default:
					startX = (points[i-1].X + p.X) / 2
					startY = (points[i-1].Y + p.Y) / 2
					ops = append(ops, PathOp{Kind: OpMoveTo, To: pt(startX, startY)})
					first = false
				}
			case !prevOff:
				if p.OnCurve {
					ops = append(ops, PathOp{Kind: OpLineTo, To: pt(p.X, p.Y)})
				} else {
					prevOff = true
				}
			default:
				if p.OnCurve {
					ops = append(ops, PathOp{Kind: OpQuadBezTo, Control: pt(points[i-1].X, points[i-1].Y), To: pt(p.X, p.Y)})
					prevOff = false
				} else {
					midX := (points[i-1].X + p.X) / 2
					midY := (points[i-1].Y + p.Y) / 2
					ops = append(ops, PathOp{Kind: OpQuadBezTo, Control: pt(points[i-1].X, points[i-1].Y), To: pt(midX, midY)})
				}
			}
			if p.LastOfContour {
				break
			}
			i++
		}

		// i still names the contour's last point here, so the closing
		// segments below use points[i] as the trailing control point.
		switch {
		case firstOff && prevOff:
			midX := (points[i].X + points[j].X) / 2
			midY := (points[i].Y + points[j].Y) / 2
			ops = append(ops, PathOp{Kind: OpQuadBezTo, Control: pt(points[i].X, points[i].Y), To: pt(midX, midY)})
			ops = append(ops, PathOp{Kind: OpQuadBezTo, Control: pt(points[j].X, points[j].Y), To: pt(startX, startY)})
		case firstOff:
			ops = append(ops, PathOp{Kind: OpQuadBezTo, Control: pt(points[j].X, points[j].Y), To: pt(startX, startY)})
		case prevOff:
			ops = append(ops, PathOp{Kind: OpQuadBezTo, Control: pt(points[i].X, points[i].Y), To: pt(startX, startY)})
		}
		i++
	}
	return ops
}
