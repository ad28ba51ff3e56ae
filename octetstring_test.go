package asn1reader

import "testing"

func TestPrimitiveOctetString(t *testing.T) {
	r, _ := NewReader([]byte{0x04, 0x03, 0xDE, 0xAD, 0xBE}, DER)
	raw, ok, err := r.PrimitiveOctetString(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected primitive encoding")
	}
	want := []byte{0xDE, 0xAD, 0xBE}
	if !bytesEqual(raw, want) {
		t.Fatalf("got % X, want % X", raw, want)
	}
	if !r.Exhausted() {
		t.Fatalf("expected reader exhausted")
	}
}

func TestConstructedOctetString_BER(t *testing.T) {
	// 24 80 (constructed, indefinite) 04 02 AA BB 04 02 CC DD 00 00 (EOC)
	data := []byte{
		0x24, 0x80,
		0x04, 0x02, 0xAA, 0xBB,
		0x04, 0x02, 0xCC, 0xDD,
		0x00, 0x00,
	}
	r, _ := NewReader(data, BER)
	dst := make([]byte, 8)
	n, ok, err := r.CopyOctetStringBytes(dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected dst large enough")
	}
	if n != 4 {
		t.Fatalf("expected 4 bytes, got %d", n)
	}
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	if !bytesEqual(dst[:n], want) {
		t.Fatalf("got % X, want % X", dst[:n], want)
	}
	if !r.Exhausted() {
		t.Fatalf("expected reader exhausted")
	}
}

func TestConstructedOctetString_ForbiddenUnderDER(t *testing.T) {
	data := []byte{
		0x24, 0x06,
		0x04, 0x02, 0xAA, 0xBB,
		0x04, 0x02, 0xCC, 0xDD,
	}
	r, _ := NewReader(data, DER)
	if _, _, err := r.CopyOctetStringBytes(make([]byte, 8), nil); err == nil {
		t.Fatalf("expected DER to reject constructed OCTET STRING")
	}
}

func TestConstructedOctetString_CERSegmentSizeRule(t *testing.T) {
	// A non-final segment whose payload is shorter than 1000 bytes is
	// invalid under CER.
	data := []byte{
		0x24, 0x80,
		0x04, 0x02, 0xAA, 0xBB,
		0x04, 0x02, 0xCC, 0xDD,
		0x00, 0x00,
	}
	r, _ := NewReader(data, CER)
	if _, _, err := r.CopyOctetStringBytes(make([]byte, 8), nil); err == nil {
		t.Fatalf("expected CER to reject an undersized non-final segment")
	}
}

func TestCopyOctetStringBytes_DstTooSmall(t *testing.T) {
	r, _ := NewReader([]byte{0x04, 0x03, 0x01, 0x02, 0x03}, DER)
	_, ok, err := r.CopyOctetStringBytes(make([]byte, 2), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for undersized destination")
	}
}
