package asn1reader

import "sort"

/*
bitstring.go implements the BIT STRING engine (§4.9): primitive and
constructed reassembly, unused-bits handling, and the NamedBitList
flags accessor. Grounded on the teacher's BitString.readBER (bs.go)
for the primitive shape and cer_on.go's cerSegmentedOctetStringRead
for the constructed-segment-walking idiom (adapted here to also carry
the unused-bits byte each segment has and that OCTET STRING does not).

Design decision (see DESIGN.md Open Question 1): the raw and normalized
views of a primitive BIT STRING's last byte are both exposed rather
than only one, since spec.md leaves this unresolved and flags it as an
open question.

Design decision on NamedBitList bit numbering: this accessor numbers
flags by reading each payload byte least-significant-bit first,
continuing across bytes in wire order, assigning ascending flag
numbers starting at 1 to every set bit encountered (the last byte's
`unused` low-order padding bits are skipped entirely, never
contributing a flag number). This is the literal reading of "bit 0 of
byte 0 as value 1, bit 1 as value 2" with the traversal reversed
within each byte relative to ASN.1's MSB-first wire convention.
*/

// bitStringSegment is one primitive BIT STRING segment discovered
// while flattening a constructed encoding.
type bitStringSegment struct {
	unused  byte
	payload []byte
}

const maxBitStringNestingDepth = 64

// parsePrimitiveBitStringContent validates and splits primitive BIT
// STRING content into its unused-bit count and payload.
func parsePrimitiveBitStringContent(content []byte) (unused byte, payload []byte, err error) {
	if len(content) == 0 {
		return 0, nil, malformedf("BIT STRING content must be at least one byte")
	}
	unused = content[0]
	if unused > 7 {
		return 0, nil, malformedf("BIT STRING unused-bit count %d out of range [0,7]", unused)
	}
	payload = content[1:]
	if len(payload) == 0 && unused != 0 {
		return 0, nil, malformedf("BIT STRING with no payload bytes must declare unused=0")
	}
	return unused, payload, nil
}

// checkTrailingBitsZero enforces that, under DER/CER, the `unused`
// low-order bits of payload's last byte are zero.
func checkTrailingBitsZero(payload []byte, unused byte, rule EncodingRule) error {
	if !rule.requiresZeroPadding() {
		return nil
	}
	if len(payload) == 0 || unused == 0 {
		return nil
	}
	last := payload[len(payload)-1]
	mask := byte(0xFF) >> (8 - unused)
	if last&mask != 0 {
		return malformedf("BIT STRING trailing %d unused bit(s) are not zero under %s", unused, rule)
	}
	return nil
}

// normalizedLastByte returns payload's last byte with its low `unused`
// bits forced to zero, leaving payload itself untouched.
func normalizedLastByte(payload []byte, unused byte) byte {
	if len(payload) == 0 {
		return 0
	}
	last := payload[len(payload)-1]
	return last &^ (byte(0xFF) >> (8 - unused))
}

// collectBitStringSegments flattens a (possibly nested) constructed
// BIT STRING body into an ordered slice of primitive segments,
// enforcing the rule-specific constructed-ness constraints of §4.9.
// Recursion depth is bounded by maxBitStringNestingDepth; since every
// nested level consumes at least two header bytes of input, depth is
// naturally bounded by input size well below that limit in practice.
func collectBitStringSegments(body []byte, rule EncodingRule, depth int, out *[]bitStringSegment) error {
	if depth > maxBitStringNestingDepth {
		return malformedf("constructed BIT STRING nesting exceeds limit")
	}

	pos := 0
	for pos < len(body) {
		tag, tn, err := parseTag(body, pos)
		if err != nil {
			return err
		}
		ln, ln2, err := parseLength(body, pos+tn, rule)
		if err != nil {
			return err
		}
		headerLen := tn + ln2
		contentStart := pos + headerLen

		if tag.Class != ClassUniversal || tag.Number != TagBitString {
			return malformedf("unexpected tag inside constructed BIT STRING")
		}

		if tag.Constructed {
			if rule == DER {
				return malformedf("constructed BIT STRING forbidden under DER")
			}
			if rule == CER {
				return malformedf("nested constructed BIT STRING forbidden under CER")
			}
			var contentEnd int
			var nested []byte
			if ln.isIndefinite {
				consumed, err := seekEndOfContents(body, contentStart)
				if err != nil {
					return err
				}
				contentEnd = contentStart + consumed + 2
				nested = body[contentStart : contentStart+consumed]
			} else {
				contentEnd = contentStart + ln.value
				if contentEnd > len(body) {
					return malformedf("declared length exceeds remaining buffer")
				}
				nested = body[contentStart:contentEnd]
			}
			if err := collectBitStringSegments(nested, rule, depth+1, out); err != nil {
				return err
			}
			pos = contentEnd
			continue
		}

		if ln.isIndefinite {
			return malformedf("primitive encoding with indefinite length")
		}
		contentEnd := contentStart + ln.value
		if contentEnd > len(body) {
			return malformedf("declared length exceeds remaining buffer")
		}
		unused, payload, err := parsePrimitiveBitStringContent(body[contentStart:contentEnd])
		if err != nil {
			return err
		}
		*out = append(*out, bitStringSegment{unused: unused, payload: payload})
		pos = contentEnd
	}
	return nil
}

// validateAndAssembleSegments applies §4.9's segment rules (only the
// last segment may carry a non-zero unused count; CER's 1000-byte cap
// on every non-final segment plus the >1000-byte aggregate floor) and
// concatenates the segments' payloads.
func validateAndAssembleSegments(segments []bitStringSegment, rule EncodingRule) (unused byte, payload []byte, err error) {
	if len(segments) == 0 {
		return 0, nil, malformedf("constructed BIT STRING has no segments")
	}

	total := 0
	for i, seg := range segments {
		total += len(seg.payload) + 1
		if i < len(segments)-1 && seg.unused != 0 {
			return 0, nil, malformedf("non-final BIT STRING segment has non-zero unused-bit count")
		}
		if rule.requiresSegmentedConstructedString() && i < len(segments)-1 {
			if len(seg.payload) != cerMaxSegmentLength-1 {
				return 0, nil, malformedf("CER BIT STRING segment content length must be %d, got %d", cerMaxSegmentLength, len(seg.payload)+1)
			}
		}
	}
	if rule.requiresSegmentedConstructedString() && total <= cerMaxSegmentLength {
		return 0, nil, malformedf("CER constructed BIT STRING aggregate content length must exceed %d bytes", cerMaxSegmentLength)
	}

	buf := getScratch(total)
	defer putScratch(buf)
	for _, seg := range segments {
		*buf = append(*buf, seg.payload...)
	}
	payload = append([]byte(nil), *buf...)
	unused = segments[len(segments)-1].unused
	return unused, payload, nil
}

// readBitStringHeader resolves tag/length and dispatches to the
// primitive or constructed path, returning the resolved unused count,
// assembled payload, and the byte offset just past the whole TLV.
func (r *Reader) readBitStringHeader(expected *Tag) (h tlvHeader, unused byte, payload []byte, err error) {
	h, err = r.peekHeader()
	if err != nil {
		return
	}
	if err = expectTag(h.tag, expected, TagBitString); err != nil {
		return
	}

	if !h.tag.Constructed {
		content := r.buf[h.contentStart : h.contentStart+h.len.value]
		unused, payload, err = parsePrimitiveBitStringContent(content)
		if err != nil {
			return
		}
		err = checkTrailingBitsZero(payload, unused, r.rule)
		return
	}

	if r.rule == DER {
		err = malformedf("constructed BIT STRING forbidden under DER")
		return
	}
	if r.rule == CER && !h.len.isIndefinite {
		err = malformedf("constructed BIT STRING must use indefinite length under CER")
		return
	}

	body := r.buf[h.contentStart : h.contentStart+h.len.value]
	var segments []bitStringSegment
	if err = collectBitStringSegments(body, r.rule, 0, &segments); err != nil {
		return
	}
	unused, payload, err = validateAndAssembleSegments(segments, r.rule)
	if err != nil {
		return
	}
	err = checkTrailingBitsZero(payload, unused, r.rule)
	return
}

// PrimitiveBitString returns the unused-bit count and raw payload of
// the next TLV if, and only if, it is encoded in primitive form. If
// the encoding is constructed, ok is false and no error is raised —
// callers wanting either shape should use CopyBitStringBytes instead.
func (r *Reader) PrimitiveBitString(expected *Tag) (unused byte, raw []byte, ok bool, err error) {
	save := r.offset
	h, err := r.peekHeader()
	if err != nil {
		return 0, nil, false, err
	}
	if err = expectTag(h.tag, expected, TagBitString); err != nil {
		return 0, nil, false, err
	}
	if h.tag.Constructed {
		return 0, nil, false, nil
	}
	content := r.buf[h.contentStart : h.contentStart+h.len.value]
	unused, raw, err = parsePrimitiveBitStringContent(content)
	if err != nil {
		r.offset = save
		return 0, nil, false, err
	}
	if err = checkTrailingBitsZero(raw, unused, r.rule); err != nil {
		r.offset = save
		return 0, nil, false, err
	}
	r.offset = h.contentEnd
	return unused, raw, true, nil
}

// NormalizedBitString is PrimitiveBitString's payload with the
// trailing `unused` bits of the last byte masked to zero, leaving the
// returned raw slice (if also requested) untouched.
func NormalizedBitString(unused byte, raw []byte) []byte {
	if len(raw) == 0 {
		return raw
	}
	out := append([]byte(nil), raw...)
	out[len(out)-1] = normalizedLastByte(raw, unused)
	return out
}

// CopyBitStringBytes reassembles the next BIT STRING TLV, whether
// primitive or constructed, into dst. It returns ok=false without
// error if dst is too small to hold the payload.
func (r *Reader) CopyBitStringBytes(dst []byte, expected *Tag) (unused byte, n int, ok bool, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()

	h, unused, payload, err := r.readBitStringHeader(expected)
	if err != nil {
		return 0, 0, false, err
	}
	if len(payload) > len(dst) {
		r.offset = save
		return 0, 0, false, nil
	}
	n = copy(dst, payload)
	r.offset = h.contentEnd
	return unused, n, true, nil
}

// GetNamedBitListPositions decodes the next BIT STRING TLV and returns
// the set of asserted flag positions per the NamedBitList convention
// (see package doc comment above): ascending flag numbers starting at
// 1, assigned by reading each payload byte least-significant-bit first
// and continuing across bytes in wire order.
func (r *Reader) GetNamedBitListPositions(expected *Tag) (flags []int, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()

	h, unused, payload, err := r.readBitStringHeader(expected)
	if err != nil {
		return nil, err
	}
	if err = checkLastDeclaredBitSet(payload, unused, r.rule); err != nil {
		return nil, err
	}
	flags = namedBitListPositions(unused, payload)
	r.offset = h.contentEnd
	return flags, nil
}

// checkLastDeclaredBitSet enforces §4.9's DER/CER NamedBitList trimming
// invariant: the last declared bit (the one immediately preceding the
// unused padding bits) must be 1. A trailing named bit of 0 is
// non-canonical and would have been trimmed by a conforming encoder.
func checkLastDeclaredBitSet(payload []byte, unused byte, rule EncodingRule) error {
	if !rule.requiresZeroPadding() {
		return nil
	}
	if len(payload) == 0 {
		return nil
	}
	totalBits := len(payload)*8 - int(unused)
	if totalBits <= 0 {
		return nil
	}
	lastIdx := totalBits - 1
	byteIdx := lastIdx / 8
	shift := 7 - uint(lastIdx%8)
	if (payload[byteIdx]>>shift)&1 == 0 {
		return malformedf("NamedBitList last declared bit must be 1 under %s", rule)
	}
	return nil
}

// GetNamedBitListValue decodes the next BIT STRING TLV into T, a
// flags-convention integer type, by OR-ing in bit (pos-1) of the result
// for every asserted flag position GetNamedBitListPositions reports. T
// must implement BitFlags with IsBitFlags() returning true; the
// opposite of GetEnumeratedValue's assertion, since the two ASN.1
// constructs are deliberately not interchangeable (§4.6, §9).
func GetNamedBitListValue[T ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](r *Reader, expected *Tag) (v T, err error) {
	var zero T
	if bf, ok := any(zero).(BitFlags); !ok || !bf.IsBitFlags() {
		return zero, invalidArgf("NamedBitList accessor requires a backing type implementing BitFlags with IsBitFlags()==true")
	}

	flags, err := r.GetNamedBitListPositions(expected)
	if err != nil {
		return zero, err
	}
	for _, pos := range flags {
		v |= T(1) << uint(pos-1)
	}
	return v, nil
}

func namedBitListPositions(unused byte, payload []byte) []int {
	var out []int
	for byteIdx, b := range payload {
		loLimit := 0
		if byteIdx == len(payload)-1 {
			loLimit = int(unused)
		}
		for i := loLimit; i < 8; i++ {
			if (b>>uint(i))&1 == 1 {
				out = append(out, byteIdx*8+i+1)
			}
		}
	}
	sort.Ints(out)
	return out
}
