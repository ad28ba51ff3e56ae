package asn1reader

import "math/big"

/*
integer.go implements the INTEGER accessor family (§4.5). Grounded on
the teacher's decodeIntegerContent and bEFitsInt64/bEToInt64 (int.go),
with the fixed-width try_* accessors built fresh in the same idiom —
the teacher's Integer type is a generic write-capable wrapper that goes
well beyond what a reader needs; this module keeps only the decode-side
two's-complement logic and the big.Int fallback.
*/

// validateIntegerRedundancy enforces X.690 §8.3.2: a multi-byte
// INTEGER content whose first nine bits are all zero or all one is a
// non-minimal (redundant) encoding.
func validateIntegerRedundancy(content []byte) error {
	if len(content) == 0 {
		return malformedf("INTEGER content must be at least one byte")
	}
	if len(content) >= 2 {
		if content[0] == 0x00 && content[1]&0x80 == 0 {
			return malformedf("redundant leading 0x00 octet in INTEGER encoding")
		}
		if content[0] == 0xFF && content[1]&0x80 != 0 {
			return malformedf("redundant leading 0xFF octet in INTEGER encoding")
		}
	}
	return nil
}

// readIntegerHeader validates tag shape and redundancy, returning the
// raw content bytes. Common to every INTEGER/ENUMERATED accessor.
func (r *Reader) readIntegerHeader(expected *Tag, universalNumber uint32) (h tlvHeader, content []byte, err error) {
	h, err = r.peekHeader()
	if err != nil {
		return
	}
	if err = expectTag(h.tag, expected, universalNumber); err != nil {
		return
	}
	if h.tag.Constructed {
		err = malformedf("INTEGER-shaped value must be primitive")
		return
	}
	content = r.buf[h.contentStart : h.contentStart+h.len.value]
	err = validateIntegerRedundancy(content)
	return
}

// GetIntegerBytes returns the raw two's-complement content bytes of
// the next INTEGER TLV without further interpretation, for
// arbitrary-precision callers.
func (r *Reader) GetIntegerBytes(expected *Tag) (out []byte, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()
	h, content, err := r.readIntegerHeader(expected, TagInteger)
	if err != nil {
		return nil, err
	}
	out = append([]byte(nil), content...)
	r.offset = h.contentEnd
	return out, nil
}

// GetBigInteger decodes the next INTEGER TLV as an arbitrary-precision
// two's-complement big.Int.
func (r *Reader) GetBigInteger(expected *Tag) (v *big.Int, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()
	h, content, err := r.readIntegerHeader(expected, TagInteger)
	if err != nil {
		return nil, err
	}
	v = bigFromTwosComplement(content)
	r.offset = h.contentEnd
	return v, nil
}

// bigFromTwosComplement interprets content as big-endian two's-complement.
func bigFromTwosComplement(content []byte) *big.Int {
	v := new(big.Int).SetBytes(content)
	if content[0]&0x80 != 0 {
		// Negative: subtract 2^(8*len(content)).
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(content)))
		v.Sub(v, mod)
	}
	return v
}

// fitsSigned reports whether content, interpreted as two's-complement,
// fits within bits signed bits, and if so returns its int64 value.
func fitsSigned(content []byte, bits int) (int64, bool) {
	v := bigFromTwosComplement(content)
	if !v.IsInt64() {
		return 0, false
	}
	i := v.Int64()
	minV := int64(-1) << uint(bits-1)
	maxV := (int64(1) << uint(bits-1)) - 1
	if i < minV || i > maxV {
		return 0, false
	}
	return i, true
}

// fitsUnsigned reports whether content fits within bits unsigned bits.
// A single leading 0x00 byte present only to clear the sign bit is
// tolerated; any genuinely negative value fails.
func fitsUnsigned(content []byte, bits int) (uint64, bool) {
	v := bigFromTwosComplement(content)
	if v.Sign() < 0 {
		return 0, false
	}
	if !v.IsUint64() {
		return 0, false
	}
	u := v.Uint64()
	var maxV uint64
	if bits >= 64 {
		maxV = ^uint64(0)
	} else {
		maxV = (uint64(1) << uint(bits)) - 1
	}
	if u > maxV {
		return 0, false
	}
	return u, true
}

// TryReadInt8 decodes the next INTEGER as a signed 8-bit value. On
// overflow it returns (0, false, nil) without advancing the cursor; a
// malformed encoding still returns a non-nil error.
func (r *Reader) TryReadInt8(expected *Tag) (int8, bool, error) {
	v, ok, err := r.tryReadSigned(expected, 8)
	return int8(v), ok, err
}

func (r *Reader) TryReadInt16(expected *Tag) (int16, bool, error) {
	v, ok, err := r.tryReadSigned(expected, 16)
	return int16(v), ok, err
}

func (r *Reader) TryReadInt32(expected *Tag) (int32, bool, error) {
	v, ok, err := r.tryReadSigned(expected, 32)
	return int32(v), ok, err
}

func (r *Reader) TryReadInt64(expected *Tag) (int64, bool, error) {
	return r.tryReadSigned(expected, 64)
}

func (r *Reader) TryReadUint8(expected *Tag) (uint8, bool, error) {
	v, ok, err := r.tryReadUnsigned(expected, 8)
	return uint8(v), ok, err
}

func (r *Reader) TryReadUint16(expected *Tag) (uint16, bool, error) {
	v, ok, err := r.tryReadUnsigned(expected, 16)
	return uint16(v), ok, err
}

func (r *Reader) TryReadUint32(expected *Tag) (uint32, bool, error) {
	v, ok, err := r.tryReadUnsigned(expected, 32)
	return uint32(v), ok, err
}

func (r *Reader) TryReadUint64(expected *Tag) (uint64, bool, error) {
	return r.tryReadUnsigned(expected, 64)
}

func (r *Reader) tryReadSigned(expected *Tag, bits int) (v int64, ok bool, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()
	h, content, err := r.readIntegerHeader(expected, TagInteger)
	if err != nil {
		return 0, false, err
	}
	v, ok = fitsSigned(content, bits)
	if !ok {
		r.offset = save
		return 0, false, nil
	}
	r.offset = h.contentEnd
	return v, true, nil
}

func (r *Reader) tryReadUnsigned(expected *Tag, bits int) (v uint64, ok bool, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()
	h, content, err := r.readIntegerHeader(expected, TagInteger)
	if err != nil {
		return 0, false, err
	}
	v, ok = fitsUnsigned(content, bits)
	if !ok {
		r.offset = save
		return 0, false, nil
	}
	r.offset = h.contentEnd
	return v, true, nil
}
