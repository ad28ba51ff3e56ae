package asn1reader

/*
rules.go defines EncodingRule and the per-rule conformance switches
every codec in this package consults, grounded on the BER/CER/DER
split the teacher keeps across ber.go/cer.go/der.go and the rule
constants in var.go.
*/

// EncodingRule selects which of the three X.690 encodings a Reader enforces.
type EncodingRule int

const (
	// BER is the Basic Encoding Rules: the permissive superset of CER and DER.
	BER EncodingRule = iota
	// CER is the Canonical Encoding Rules: mandates indefinite-length
	// constructed encodings with 1000-byte segments for long string values.
	CER
	// DER is the Distinguished Encoding Rules: fully canonical, exactly
	// one valid encoding per value.
	DER
)

func (r EncodingRule) String() string {
	switch r {
	case BER:
		return "BER"
	case CER:
		return "CER"
	case DER:
		return "DER"
	default:
		return "INVALID"
	}
}

func (r EncodingRule) valid() bool {
	return r == BER || r == CER || r == DER
}

// allowsIndefiniteLength reports whether the rule permits the indefinite
// length form 0x80 on a constructed value. BER allows it everywhere;
// CER allows it too (it is the form CER mandates for constructed
// BIT STRING / OCTET STRING reassembly once content exceeds the
// segment cap, §4.9/§4.10); DER forbids it outright.
func (r EncodingRule) allowsIndefiniteLength() bool {
	return r == BER || r == CER
}

// requiresMinimalLength reports whether non-minimal long-form lengths
// (leading zero octets, or long form used where short form would do) are
// rejected.
func (r EncodingRule) requiresMinimalLength() bool {
	return r == DER || r == CER
}

// requiresStrictBoolean reports whether only 0x00/0xFF are valid BOOLEAN
// content octets (true under DER and CER; BER accepts any non-zero byte
// as true).
func (r EncodingRule) requiresStrictBoolean() bool {
	return r == DER || r == CER
}

// requiresZeroPadding reports whether the unused trailing bits of a
// BIT STRING's last payload byte must be zero (true under DER and CER).
func (r EncodingRule) requiresZeroPadding() bool {
	return r == DER || r == CER
}

// forbidsConstructedString reports whether a constructed BIT STRING or
// OCTET STRING encoding is rejected outright (true only under DER; CER
// mandates it for long values and BER always permits it).
func (r EncodingRule) forbidsConstructedString() bool {
	return r == DER
}

// requiresSegmentedConstructedString reports whether CER's "must use
// constructed form with 1000-byte segments once content exceeds 1000
// bytes" rule is in effect.
func (r EncodingRule) requiresSegmentedConstructedString() bool {
	return r == CER
}

// validatesSetOfOrder reports whether SET OF element ordering is
// checked on decode (DER and CER; BER does not check).
func (r EncodingRule) validatesSetOfOrder() bool {
	return r == DER || r == CER
}

// cerMaxSegmentLength is the maximum content length of any non-final
// primitive segment inside a CER constructed BIT STRING/OCTET STRING.
const cerMaxSegmentLength = 1000
