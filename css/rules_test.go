package css

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStylesheetSimpleRule(t *testing.T) {
	sheet, err := ParseStylesheet("a { color: red; }")
	if err != nil {
		t.Fatalf("ParseStylesheet: %v", err)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(sheet.Rules))
	}
	rule := sheet.Rules[0]
	if len(rule.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(rule.Declarations))
	}
	decl := rule.Declarations[0]
	if decl.Name.String() != "color" {
		t.Errorf("name = %q, want color", decl.Name.String())
	}
	if len(decl.Value) != 1 || decl.Value[0].Kind != Ident || decl.Value[0].Value.String() != "red" {
		t.Errorf("value = %+v, want [Ident(red)]", decl.Value)
	}
	if decl.Importance != Normal {
		t.Errorf("importance = %v, want Normal", decl.Importance)
	}
}

func TestParseStylesheetImportantDeclaration(t *testing.T) {
	sheet, err := ParseStylesheet("a { color: red !important; }")
	if err != nil {
		t.Fatalf("ParseStylesheet: %v", err)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(sheet.Rules))
	}
	rule := sheet.Rules[0]
	if len(rule.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(rule.Declarations))
	}
	decl := rule.Declarations[0]
	if decl.Name.String() != "color" {
		t.Errorf("name = %q, want color", decl.Name.String())
	}
	if len(decl.Value) != 1 || decl.Value[0].Value.String() != "red" {
		t.Errorf("value = %+v, want [red]", decl.Value)
	}
	if decl.Importance != Important {
		t.Errorf("importance = %v, want Important", decl.Importance)
	}
}

func TestParseStylesheetMultipleDeclarations(t *testing.T) {
	sheet, err := ParseStylesheet("div { color: red; margin: 1px; }")
	if err != nil {
		t.Fatalf("ParseStylesheet: %v", err)
	}
	rule := sheet.Rules[0]
	if len(rule.Declarations) != 2 {
		t.Fatalf("got %d declarations, want 2", len(rule.Declarations))
	}
	if rule.Declarations[1].Name.String() != "margin" {
		t.Errorf("second declaration name = %q, want margin", rule.Declarations[1].Name.String())
	}
}

func TestParseStylesheetBadDeclarationRecovery(t *testing.T) {
	sheet, err := ParseStylesheet("a { not-a-declaration; color: red; }")
	if err != nil {
		t.Fatalf("ParseStylesheet: %v", err)
	}
	rule := sheet.Rules[0]
	if len(rule.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1 (bad declaration recovered past)", len(rule.Declarations))
	}
	if rule.Declarations[0].Name.String() != "color" {
		t.Errorf("name = %q, want color", rule.Declarations[0].Name.String())
	}
}

func TestParseStylesheetMultipleRules(t *testing.T) {
	sheet, err := ParseStylesheet("a { color: red; } b { color: blue; }")
	if err != nil {
		t.Fatalf("ParseStylesheet: %v", err)
	}
	if len(sheet.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(sheet.Rules))
	}
}

// TestParseFourSidedLength checks the shorthand expansion rule (one value
// sets all sides, two set top/bottom then left/right, three add a distinct
// bottom, four are taken in top/right/bottom/left order) by diffing the
// parsed Sides[Length] against a fully-built expectation, rather than
// checking each side's fields individually.
func TestParseFourSidedLength(t *testing.T) {
	px := Intern("px")
	length := func(v float64) Length { return Length{Value: v, Unit: px} }

	vectors := []struct {
		desc   string
		source string
		want   Sides[Length]
	}{
		{
			desc:   "one value",
			source: "1px",
			want:   Sides[Length]{Top: length(1), Right: length(1), Bottom: length(1), Left: length(1)},
		},
		{
			desc:   "two values",
			source: "1px 2px",
			want:   Sides[Length]{Top: length(1), Right: length(2), Bottom: length(1), Left: length(2)},
		},
		{
			desc:   "three values",
			source: "1px 2px 3px",
			want:   Sides[Length]{Top: length(1), Right: length(2), Bottom: length(3), Left: length(2)},
		},
		{
			desc:   "four values",
			source: "1px 2px 3px 4px",
			want:   Sides[Length]{Top: length(1), Right: length(2), Bottom: length(3), Left: length(4)},
		},
	}
	for _, v := range vectors {
		got, err := ParseFourSidedLength(v.source)
		if err != nil {
			t.Errorf("%s: ParseFourSidedLength(%q): %v", v.desc, v.source, err)
			continue
		}
		if diff := cmp.Diff(v.want, got); diff != "" {
			t.Errorf("%s: ParseFourSidedLength(%q) mismatch (-want +got):\n%s", v.desc, v.source, diff)
		}
	}
}

func TestParseFourSidedLengthEmptyFails(t *testing.T) {
	if _, err := ParseFourSidedLength(""); err == nil {
		t.Errorf("ParseFourSidedLength(\"\") succeeded, want error")
	}
}

func TestParseLengthList(t *testing.T) {
	got, err := ParseLengthList("1px, 2px ,50%")
	if err != nil {
		t.Fatalf("ParseLengthList: %v", err)
	}
	want := []Length{
		{Value: 1, Unit: Intern("px")},
		{Value: 2, Unit: Intern("px")},
		{Value: 50, Percentage: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseLengthList mismatch (-want +got):\n%s", diff)
	}
	if _, err := ParseLengthList(""); err == nil {
		t.Errorf("ParseLengthList(\"\") succeeded, want error")
	}
}

func TestParseLengths(t *testing.T) {
	got, err := ParseLengths("1px 2px 3px")
	if err != nil {
		t.Fatalf("ParseLengths: %v", err)
	}
	if len(got) != 3 || got[2].Value != 3 {
		t.Errorf("ParseLengths = %+v, want three px lengths", got)
	}
	if _, err := ParseLengths(" "); err == nil {
		t.Errorf("ParseLengths(\" \") succeeded, want error")
	}
}
