package textcursor

import "testing"

func TestNextAndGoBack(t *testing.T) {
	c := New("aä€")

	r, ok := c.Next()
	if !ok || r != 'a' {
		t.Fatalf("Next = %q, %v, want 'a', true", r, ok)
	}
	r, ok = c.Next()
	if !ok || r != 'ä' {
		t.Fatalf("Next = %q, %v, want 'ä', true", r, ok)
	}

	c.GoBack()
	if r, _ := c.Current(); r != 'ä' {
		t.Fatalf("Current after GoBack = %q, want 'ä'", r)
	}

	c.AdvanceBy(2)
	if c.Remaining() {
		t.Errorf("Remaining = true at end of input")
	}
	if _, ok := c.Next(); ok {
		t.Errorf("Next succeeded at end of input")
	}
}

func TestPositionRoundTrip(t *testing.T) {
	c := New("x€y")
	c.Next()
	pos := c.Position()
	c.Next()
	c.Next()
	c.SetPosition(pos)
	r, ok := c.Next()
	if !ok || r != '€' {
		t.Fatalf("Next after SetPosition = %q, %v, want '€', true", r, ok)
	}
	if got := c.Slice(pos, c.Position()); got != "€" {
		t.Errorf("Slice = %q, want %q", got, "€")
	}
}
