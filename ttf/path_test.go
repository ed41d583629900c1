package ttf

import "testing"

// TestExtractPathConsecutiveOffCurvePoints verifies that two consecutive
// off-curve points produce a synthetic on-curve midpoint between them,
// rather than an invalid back-to-back control-point pair.
func TestExtractPathConsecutiveOffCurvePoints(t *testing.T) {
	g := &Glyph{
		Kind: GlyphSimple,
		simple: &simpleGlyphData{
			endPoints: []uint16{3},
			flags:     []byte{0x37, 0x36, 0x36, 0x37},
			xCoords:   []byte{0, 10, 0, 10},
			yCoords:   []byte{0, 0, 10, 0},
			numPoints: 4,
		},
	}
	ops := ExtractPath(g)
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3 (MoveTo + 2 QuadBezTo)", len(ops))
	}
	if ops[0].Kind != OpMoveTo {
		t.Errorf("ops[0].Kind = %v, want OpMoveTo", ops[0].Kind)
	}
	if ops[1].Kind != OpQuadBezTo || ops[2].Kind != OpQuadBezTo {
		t.Errorf("ops[1], ops[2] kinds = %v, %v, want OpQuadBezTo, OpQuadBezTo", ops[1].Kind, ops[2].Kind)
	}
	wantMid := pt(10, 5)
	if ops[1].To != wantMid {
		t.Errorf("synthetic midpoint = %v, want %v", ops[1].To, wantMid)
	}
	wantEnd := pt(20, 10)
	if ops[2].To != wantEnd {
		t.Errorf("final on-curve point = %v, want %v", ops[2].To, wantEnd)
	}
}
