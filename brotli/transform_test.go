package brotli

import "testing"

// TestTransformWord exercises the five named transforms against the "hello"
// dictionary word.
func TestTransformWord(t *testing.T) {
	word := []byte("hello")
	vectors := []struct {
		id   int
		want string
	}{
		{transformIdentity, "hello"},
		{1, "hello "},       // {"", identity, " "}
		{3, "ello"},         // omitFirst1
		{4, "Hello "},       // {"", uppercaseFirst, " "}
		{44, "HELLO"},       // {"", uppercaseAll, ""}
	}
	for _, v := range vectors {
		var buf [maxWordSize]byte
		n := transformWord(buf[:], word, v.id)
		got := string(buf[:n])
		if got != v.want {
			t.Errorf("transformWord(%q, %d) = %q, want %q", word, v.id, got, v.want)
		}
	}
}

// TestLookupDictionaryInvalidLength verifies the documented length bounds.
func TestLookupDictionaryInvalidLength(t *testing.T) {
	for _, length := range []int{3, 25} {
		func() {
			defer func() {
				r := recover()
				if r != ErrInvalidDictionaryReferenceLength {
					t.Errorf("length %d: panic = %v, want %v", length, r, ErrInvalidDictionaryReferenceLength)
				}
			}()
			lookupDictionary(nil, 0, length)
			t.Errorf("length %d: did not panic", length)
		}()
	}
}

// TestLookupDictionaryInvalidTransform verifies a transform id past the
// table's end is rejected before any word bytes are read.
func TestLookupDictionaryInvalidTransform(t *testing.T) {
	const length = 4
	wordID := len(transformLUT) << dictBitSizes[length] // transform id == len(transformLUT)
	defer func() {
		r := recover()
		if r != ErrInvalidTransformID {
			t.Errorf("panic = %v, want %v", r, ErrInvalidTransformID)
		}
	}()
	lookupDictionary(nil, wordID, length)
	t.Errorf("did not panic")
}

// TestLookupDictionaryIdentityRoundTrip checks that a length-4 reference
// with the identity transform appends exactly the raw dictionary word.
func TestLookupDictionaryIdentityRoundTrip(t *testing.T) {
	const length, wordID = 4, 7 // transform id 7 >> dictBitSizes[4]=10 == 0 (identity)
	want := append([]byte(nil), dictionaryWord(length, wordID)...)
	got := lookupDictionary(nil, wordID, length)
	if string(got) != string(want) {
		t.Errorf("lookupDictionary = %q, want %q", got, want)
	}
}
