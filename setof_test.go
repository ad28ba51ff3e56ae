package asn1reader

import "testing"

func TestReadSetOf_DERRejectsOutOfOrder(t *testing.T) {
	// 31 06 02 01 02 02 01 01: SET OF INTEGER {2, 1}, out of canonical
	// order (the encoded INTEGER for 2 sorts after the one for 1).
	data := []byte{0x31, 0x06, 0x02, 0x01, 0x02, 0x02, 0x01, 0x01}
	r, _ := NewReader(data, DER)
	if _, err := r.ReadSetOf(false, nil); err == nil {
		t.Fatalf("expected DER to reject out-of-order SET OF elements")
	}

	rb, _ := NewReader(data, BER)
	if _, err := rb.ReadSetOf(false, nil); err != nil {
		t.Fatalf("expected BER to accept any order, got %v", err)
	}
}

func TestReadSetOf_DERAcceptsInOrder(t *testing.T) {
	data := []byte{0x31, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02}
	r, _ := NewReader(data, DER)
	sub, err := r.ReadSetOf(false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v1, ok1, err := sub.TryReadInt64(nil)
	if err != nil || !ok1 || v1 != 1 {
		t.Fatalf("expected 1, got v=%d ok=%v err=%v", v1, ok1, err)
	}
	v2, ok2, err := sub.TryReadInt64(nil)
	if err != nil || !ok2 || v2 != 2 {
		t.Fatalf("expected 2, got v=%d ok=%v err=%v", v2, ok2, err)
	}
}

func TestReadSetOf_SkipSortValidation(t *testing.T) {
	data := []byte{0x31, 0x06, 0x02, 0x01, 0x02, 0x02, 0x01, 0x01}
	r, _ := NewReader(data, DER)
	if _, err := r.ReadSetOf(true, nil); err != nil {
		t.Fatalf("expected skipSortValidation to suppress order check, got %v", err)
	}
}

func TestReadSetOf_RejectsPrimitiveEncoding(t *testing.T) {
	r, _ := NewReader([]byte{0x11, 0x00}, DER) // primitive form of tag 17
	if _, err := r.ReadSetOf(false, nil); err == nil {
		t.Fatalf("expected rejection of primitive SET OF encoding")
	}
}

func TestCompareCanonical(t *testing.T) {
	cases := []struct {
		a, b []byte
		want int
	}{
		{[]byte{0x01}, []byte{0x02}, -1},
		{[]byte{0x02}, []byte{0x01}, 1},
		{[]byte{0x01}, []byte{0x01}, 0},
		{[]byte{0x01}, []byte{0x01, 0x00}, -1}, // shorter, equal prefix, shorter loses
	}
	for _, c := range cases {
		got := compareCanonical(c.a, c.b)
		if (got < 0 && c.want >= 0) || (got > 0 && c.want <= 0) || (got == 0 && c.want != 0) {
			t.Fatalf("compareCanonical(% X, % X) = %d, want sign of %d", c.a, c.b, got, c.want)
		}
	}
}
