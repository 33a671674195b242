package converter

import "testing"

func TestEncodeDecodeLengthsRoundTrip(t *testing.T) {
	packed, ok := EncodeLengths(3, 4, 2, 3)
	if !ok {
		t.Fatal("EncodeLengths(3,4,2,3) reported failure, want success")
	}
	if packed != 0x03040203 {
		t.Errorf("EncodeLengths(3,4,2,3) = 0x%08x, want 0x03040203", packed)
	}

	k, v, ck, cv := DecodeLengths(packed)
	if k != 3 || v != 4 || ck != 2 || cv != 3 {
		t.Errorf("DecodeLengths(0x%08x) = (%d,%d,%d,%d), want (3,4,2,3)", packed, k, v, ck, cv)
	}
}

func TestEncodeLengthsOverflow(t *testing.T) {
	if _, ok := EncodeLengths(256, 1, 1, 1); ok {
		t.Error("EncodeLengths(256,1,1,1) reported success, want failure")
	}
	if _, ok := EncodeLengths(1, -1, 1, 1); ok {
		t.Error("EncodeLengths with a negative length reported success, want failure")
	}
}

func TestPushBackInnerSegmentBoundaryClearsOnOverflow(t *testing.T) {
	c := &Candidate{}
	if !c.PushBackInnerSegmentBoundary(1, 1, 1, 1) {
		t.Fatal("first push should succeed")
	}
	if len(c.InnerSegmentBoundary) != 1 {
		t.Fatalf("len(InnerSegmentBoundary) = %d, want 1", len(c.InnerSegmentBoundary))
	}
	if c.PushBackInnerSegmentBoundary(300, 1, 1, 1) {
		t.Fatal("overflowing push should report failure")
	}
	if c.InnerSegmentBoundary != nil {
		t.Error("overflowing push should clear the boundary vector entirely, not leave it partial")
	}
}

func TestInnerSegmentIteratorWalksOffsets(t *testing.T) {
	// Two inner segments: key "a" / value "AB", then key "cd" / value "E".
	c := &Candidate{Key: "acd", Value: "ABE"}
	c.PushBackInnerSegmentBoundary(1, 2, 1, 2) // k=1,v=2,ck=1,cv=2
	c.PushBackInnerSegmentBoundary(2, 1, 2, 1) // k=2,v=1,ck=2,cv=1

	it := NewInnerSegmentIterator(c)

	it.Next()
	if it.GetKey() != "a" {
		t.Errorf("segment 0 key = %q, want %q", it.GetKey(), "a")
	}
	if it.GetValue() != "AB" {
		t.Errorf("segment 0 value = %q, want %q", it.GetValue(), "AB")
	}

	it.Next()
	if it.GetKey() != "cd" {
		t.Errorf("segment 1 key = %q, want %q", it.GetKey(), "cd")
	}
	if it.GetValue() != "E" {
		t.Errorf("segment 1 value = %q, want %q", it.GetValue(), "E")
	}

	if !it.Done() {
		t.Error("iterator should be Done after consuming both entries")
	}
}

func TestFunctionalKeyAndValue(t *testing.T) {
	c := &Candidate{Key: "はしる", Value: "走る", ContentKey: "はし", ContentValue: "走"}
	if got := c.FunctionalKey(); got != "る" {
		t.Errorf("FunctionalKey() = %q, want %q", got, "る")
	}
	if got := c.FunctionalValue(); got != "る" {
		t.Errorf("FunctionalValue() = %q, want %q", got, "る")
	}
}

func TestFunctionalKeyEmptyContentKey(t *testing.T) {
	c := &Candidate{Key: "はしる", Value: "走る"}
	if got := c.FunctionalKey(); got != "" {
		t.Errorf("FunctionalKey() with empty ContentKey = %q, want \"\"", got)
	}
}

func TestIsValid(t *testing.T) {
	if (&Candidate{Key: "a", Value: "b"}).IsValid() != true {
		t.Error("candidate with non-empty key and value should be valid")
	}
	if (&Candidate{Key: "", Value: "b"}).IsValid() {
		t.Error("candidate with empty key should be invalid")
	}
	if (&Candidate{Key: "a", Value: ""}).IsValid() {
		t.Error("candidate with empty value should be invalid")
	}
}
