package asn1reader

import "testing"

func TestReadBoolean_DER_True(t *testing.T) {
	r, _ := NewReader([]byte{0x01, 0x01, 0xFF}, DER)
	v, err := r.ReadBoolean(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v {
		t.Fatalf("expected true")
	}
	if !r.Exhausted() {
		t.Fatalf("expected reader to be exhausted")
	}
}

func TestReadBoolean_DER_RejectsNonCanonicalTrue(t *testing.T) {
	r, _ := NewReader([]byte{0x01, 0x01, 0x01}, DER)
	if _, err := r.ReadBoolean(nil); err == nil {
		t.Fatalf("expected DER to reject non-0xFF true value")
	}
	if r.Offset() != 0 {
		t.Fatalf("expected cursor to remain at 0 on failure, got %d", r.Offset())
	}

	rb, _ := NewReader([]byte{0x01, 0x01, 0x01}, BER)
	v, err := rb.ReadBoolean(nil)
	if err != nil || !v {
		t.Fatalf("expected BER to accept 0x01 as true, got v=%v err=%v", v, err)
	}
}

func TestReadInteger_UnsignedViaLeadingZero(t *testing.T) {
	r, _ := NewReader([]byte{0x02, 0x02, 0x00, 0x80}, DER)
	u, ok, err := r.TryReadUint64(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || u != 128 {
		t.Fatalf("expected unsigned 128, got ok=%v u=%d", ok, u)
	}
}

func TestReadInteger_RedundantEncodingsRejected(t *testing.T) {
	cases := [][]byte{
		{0x02, 0x02, 0xFF, 0x80}, // redundant leading 0xFF
		{0x02, 0x02, 0x00, 0x00}, // redundant leading 0x00
	}
	for _, content := range cases {
		r, _ := NewReader(content, DER)
		if _, err := r.GetIntegerBytes(nil); err == nil {
			t.Fatalf("expected redundancy rejection for % X", content)
		}
	}
}

func TestReadNull(t *testing.T) {
	r, _ := NewReader([]byte{0x05, 0x00}, DER)
	if err := r.ReadNull(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Exhausted() {
		t.Fatalf("expected reader exhausted")
	}
}

func TestReadSequence_TwoIntegers(t *testing.T) {
	r, _ := NewReader([]byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02}, DER)
	sub, err := r.ReadSequence(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Exhausted() {
		t.Fatalf("expected parent reader exhausted")
	}

	v1, ok1, err := sub.TryReadInt64(nil)
	if err != nil || !ok1 || v1 != 1 {
		t.Fatalf("expected 1, got v=%d ok=%v err=%v", v1, ok1, err)
	}
	v2, ok2, err := sub.TryReadInt64(nil)
	if err != nil || !ok2 || v2 != 2 {
		t.Fatalf("expected 2, got v=%d ok=%v err=%v", v2, ok2, err)
	}
	if err := sub.ThrowIfNotEmpty(); err != nil {
		t.Fatalf("expected sub-reader exhausted: %v", err)
	}
}

func TestCursorRestoredOnFailure(t *testing.T) {
	r, _ := NewReader([]byte{0x05, 0x01, 0x00}, DER) // NULL with bad length
	before := r.Offset()
	if err := r.ReadNull(nil); err == nil {
		t.Fatalf("expected failure")
	}
	if r.Offset() != before {
		t.Fatalf("expected offset restored to %d, got %d", before, r.Offset())
	}
}

func TestThrowIfNotEmpty(t *testing.T) {
	r, _ := NewReader([]byte{0x05, 0x00, 0xAA}, DER)
	if err := r.ReadNull(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.ThrowIfNotEmpty(); err == nil {
		t.Fatalf("expected trailing-byte failure")
	}
}
