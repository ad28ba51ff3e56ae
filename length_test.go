package asn1reader

import "testing"

func TestParseLengthShortForm(t *testing.T) {
	ln, n, err := parseLength([]byte{0x7F}, 0, DER)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || ln.value != 127 || ln.isIndefinite {
		t.Fatalf("got %+v n=%d", ln, n)
	}
}

func TestParseLengthLongForm(t *testing.T) {
	ln, n, err := parseLength([]byte{0x81, 0x80}, 0, DER)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || ln.value != 128 {
		t.Fatalf("got %+v n=%d", ln, n)
	}
}

func TestParseLengthNonMinimalRejectedUnderDER(t *testing.T) {
	// 0x82 0x00 0x7F encodes 127 using the long form where the short
	// form would suffice: rejected under DER/CER.
	_, _, err := parseLength([]byte{0x82, 0x00, 0x7F}, 0, DER)
	if err == nil {
		t.Fatalf("expected non-minimal length to be rejected under DER")
	}
	_, _, err = parseLength([]byte{0x82, 0x00, 0x7F}, 0, BER)
	if err != nil {
		t.Fatalf("expected BER to accept non-minimal length, got %v", err)
	}
}

func TestParseLengthIndefinite(t *testing.T) {
	ln, n, err := parseLength([]byte{0x80}, 0, BER)
	if err != nil || n != 1 || !ln.isIndefinite {
		t.Fatalf("got %+v n=%d err=%v", ln, n, err)
	}
	_, _, err = parseLength([]byte{0x80}, 0, DER)
	if err == nil {
		t.Fatalf("expected indefinite length to be rejected under DER")
	}
}

func TestParseLengthReserved(t *testing.T) {
	_, _, err := parseLength([]byte{0xFF}, 0, BER)
	if err == nil {
		t.Fatalf("expected 0xFF to be rejected under all rules")
	}
}
