package asn1reader

/*
enum.go implements the ENUMERATED accessor (§4.6). The wire shape is
identical to INTEGER (integer.go) but carries universal tag number 10;
grounded on the same decodeIntegerContent logic the teacher reuses for
its own Enumerated type (enum.go in go-asn1plus shares int.go's codec).
*/

// BitFlags is implemented by enumeration-like Go types that follow the
// NamedBitList flags convention (see bitstring.go). GetEnumeratedValue
// rejects such a type: ENUMERATED and NamedBitList are distinct ASN.1
// constructs, and conflating them is caller misuse (§4.6, §9).
type BitFlags interface {
	IsBitFlags() bool
}

// GetEnumeratedBytes returns the raw content bytes of the next
// ENUMERATED TLV without further interpretation.
func (r *Reader) GetEnumeratedBytes(expected *Tag) (out []byte, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()
	h, content, err := r.readIntegerHeader(expected, TagEnumerated)
	if err != nil {
		return nil, err
	}
	out = append([]byte(nil), content...)
	r.offset = h.contentEnd
	return out, nil
}

// GetEnumeratedValue decodes the next ENUMERATED TLV into T, a signed
// integer type representing the enumeration's backing value. T must
// not implement BitFlags; doing so is a caller error, since a
// bit-flags enumeration is a NamedBitList, not an ENUMERATED.
func GetEnumeratedValue[T ~int | ~int8 | ~int16 | ~int32 | ~int64](r *Reader, expected *Tag) (v T, err error) {
	var zero T
	if bf, ok := any(zero).(BitFlags); ok && bf.IsBitFlags() {
		return zero, invalidArgf("ENUMERATED accessor used with a NamedBitList-flagged backing type")
	}

	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()
	h, content, err := r.readIntegerHeader(expected, TagEnumerated)
	if err != nil {
		return zero, err
	}
	i, ok := fitsSigned(content, 64)
	if !ok {
		return zero, malformedf("ENUMERATED value exceeds 64 bits")
	}
	r.offset = h.contentEnd
	return T(i), nil
}
