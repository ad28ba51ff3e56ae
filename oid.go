package asn1reader

import (
	"math/big"
)

/*
oid.go implements OBJECT IDENTIFIER (§4.8) and its sibling production
RELATIVE-OID (§4.14, a SPEC_FULL supplement). Grounded on the teacher's
oid.go: ObjectIdentifier.readBER / decodeFirstArcs for the first-two-arc
folding rule, and RelativeOID.readBER for the un-folded sibling.
*/

// ObjectIdentifier is a decoded OID: one arbitrary-precision arc value
// per dotted component.
type ObjectIdentifier []*big.Int

// String renders the OID in dotted-decimal form.
func (o ObjectIdentifier) String() string {
	parts := make([]string, len(o))
	for i, arc := range o {
		parts[i] = arc.String()
	}
	return join(parts, ".")
}

// RelativeOID is a decoded RELATIVE-OID: like ObjectIdentifier, but
// without the first-two-arc folding rule — every sub-identifier
// decodes independently.
type RelativeOID []*big.Int

func (o RelativeOID) String() string {
	parts := make([]string, len(o))
	for i, arc := range o {
		parts[i] = arc.String()
	}
	return join(parts, ".")
}

// readSubIdentifiers decodes content as a sequence of base-128
// sub-identifiers, each a variable-length big-endian unsigned integer
// with the continuation bit set on every byte but the last. The first
// byte of any sub-identifier must not be 0x80 (minimal encoding).
func readSubIdentifiers(content []byte) ([]*big.Int, error) {
	if len(content) == 0 {
		return nil, malformedf("OID content must be at least one byte")
	}

	var arcs []*big.Int
	i := 0
	for i < len(content) {
		if content[i] == 0x80 {
			return nil, malformedf("non-minimal OID sub-identifier: leading 0x80 octet")
		}
		v := new(big.Int)
		j := i
		for {
			if j >= len(content) {
				return nil, malformedf("truncated OID sub-identifier")
			}
			b := content[j]
			v.Lsh(v, 7)
			v.Or(v, big.NewInt(int64(b&tagValueMask)))
			j++
			if b&continuationBit == 0 {
				break
			}
		}
		arcs = append(arcs, v)
		i = j
	}
	return arcs, nil
}

// decodeFirstArcs splits the first decoded sub-identifier value into
// the OID's first two arcs per X.690: v<40 -> (0,v); v<80 -> (1,v-40);
// else -> (2, v-80).
func decodeFirstArcs(v *big.Int) (*big.Int, *big.Int) {
	forty := big.NewInt(40)
	eighty := big.NewInt(80)
	switch {
	case v.Cmp(forty) < 0:
		return big.NewInt(0), new(big.Int).Set(v)
	case v.Cmp(eighty) < 0:
		return big.NewInt(1), new(big.Int).Sub(v, forty)
	default:
		return big.NewInt(2), new(big.Int).Sub(v, eighty)
	}
}

// ReadObjectIdentifier decodes the next TLV as OBJECT IDENTIFIER.
func (r *Reader) ReadObjectIdentifier(expected *Tag) (oid ObjectIdentifier, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()

	h, err := r.peekHeader()
	if err != nil {
		return nil, err
	}
	if err = expectTag(h.tag, expected, TagObjectID); err != nil {
		return nil, err
	}
	if h.tag.Constructed {
		return nil, malformedf("OBJECT IDENTIFIER must be primitive")
	}

	content := r.buf[h.contentStart : h.contentStart+h.len.value]
	subs, err := readSubIdentifiers(content)
	if err != nil {
		return nil, err
	}

	first, second := decodeFirstArcs(subs[0])
	oid = make(ObjectIdentifier, 0, len(subs)+1)
	oid = append(oid, first, second)
	oid = append(oid, subs[1:]...)

	r.offset = h.contentEnd
	return oid, nil
}

// ReadObjectIdentifierAsString decodes the next OID TLV and renders it
// in dotted-decimal form.
func (r *Reader) ReadObjectIdentifierAsString(expected *Tag) (string, error) {
	oid, err := r.ReadObjectIdentifier(expected)
	if err != nil {
		return "", err
	}
	return oid.String(), nil
}

// ReadRelativeOID decodes the next TLV as RELATIVE-OID (tag 13): every
// sub-identifier is an independent arc, with no first-two-arc folding.
func (r *Reader) ReadRelativeOID(expected *Tag) (oid RelativeOID, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()

	h, err := r.peekHeader()
	if err != nil {
		return nil, err
	}
	if err = expectTag(h.tag, expected, TagRelativeOID); err != nil {
		return nil, err
	}
	if h.tag.Constructed {
		return nil, malformedf("RELATIVE-OID must be primitive")
	}

	content := r.buf[h.contentStart : h.contentStart+h.len.value]
	subs, err := readSubIdentifiers(content)
	if err != nil {
		return nil, err
	}

	r.offset = h.contentEnd
	return RelativeOID(subs), nil
}
