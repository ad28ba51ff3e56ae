package asn1reader

import "testing"

func TestReadObjectIdentifier(t *testing.T) {
	// 1.2.840.113549 (a well-known RSADSI arc): 06 06 2A 86 48 86 F7 0D
	r, _ := NewReader([]byte{0x06, 0x06, 0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D}, DER)
	oid, err := r.ReadObjectIdentifier(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := oid.String()
	want := "1.2.840.113549"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	if !r.Exhausted() {
		t.Fatalf("expected reader exhausted")
	}
}

func TestReadObjectIdentifier_BadFirstByte(t *testing.T) {
	r, _ := NewReader([]byte{0x06, 0x02, 0x80, 0x01}, DER)
	if _, err := r.ReadObjectIdentifier(nil); err == nil {
		t.Fatalf("expected rejection of leading 0x80 sub-identifier byte")
	}
}

func TestReadObjectIdentifier_LargeArc(t *testing.T) {
	// 2.999.1: first arc folds via the v>=80 path, (2, v-80), where
	// v = 2*40 + 999 = 1079, whose base-128 encoding is 0x88 0x37.
	r, _ := NewReader([]byte{0x06, 0x03, 0x88, 0x37, 0x01}, DER)
	oid, err := r.ReadObjectIdentifier(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oid.String() != "2.999.1" {
		t.Fatalf("got %s, want 2.999.1", oid.String())
	}
}

func TestReadRelativeOID(t *testing.T) {
	r, _ := NewReader([]byte{0x0D, 0x03, 0x88, 0x37, 0x01}, DER)
	oid, err := r.ReadRelativeOID(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oid.String() != "1079.1" {
		t.Fatalf("got %s, want 1079.1 (no first-arc folding)", oid.String())
	}
}
