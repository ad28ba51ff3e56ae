package asn1reader

/*
octetstring.go implements the OCTET STRING engine (§4.10), symmetric to
bitstring.go but without the unused-bits byte. Grounded on the
teacher's oct.go (primitive shape) and cer_on.go's
cerSegmentedOctetStringRead/cerOctetStringReadBadTLV for constructed
reassembly under CER's segment-size rule.
*/

const maxOctetStringNestingDepth = 64

// collectOctetStringSegments flattens a (possibly nested) constructed
// OCTET STRING body into an ordered slice of primitive segment byte
// slices, enforcing §4.10's rule-specific constraints.
func collectOctetStringSegments(body []byte, rule EncodingRule, depth int, out *[][]byte) error {
	if depth > maxOctetStringNestingDepth {
		return malformedf("constructed OCTET STRING nesting exceeds limit")
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

		if tag.Class != ClassUniversal || tag.Number != TagOctetString {
			return malformedf("unexpected tag inside constructed OCTET STRING")
		}

		if tag.Constructed {
			if rule == DER {
				return malformedf("constructed OCTET STRING forbidden under DER")
			}
			if rule == CER {
				return malformedf("nested constructed OCTET STRING forbidden under CER")
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
			if err := collectOctetStringSegments(nested, rule, depth+1, out); err != nil {
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
		*out = append(*out, body[contentStart:contentEnd])
		pos = contentEnd
	}
	return nil
}

func assembleOctetStringSegments(segments [][]byte, rule EncodingRule) ([]byte, error) {
	if len(segments) == 0 {
		return nil, malformedf("constructed OCTET STRING has no segments")
	}

	total := 0
	for i, seg := range segments {
		total += len(seg)
		if rule.requiresSegmentedConstructedString() && i < len(segments)-1 {
			if len(seg) != cerMaxSegmentLength {
				return nil, malformedf("CER OCTET STRING segment length must be %d, got %d", cerMaxSegmentLength, len(seg))
			}
		}
	}
	if rule.requiresSegmentedConstructedString() && total <= cerMaxSegmentLength {
		return nil, malformedf("CER constructed OCTET STRING aggregate content length must exceed %d bytes", cerMaxSegmentLength)
	}

	buf := getScratch(total)
	defer putScratch(buf)
	for _, seg := range segments {
		*buf = append(*buf, seg...)
	}
	return append([]byte(nil), *buf...), nil
}

func (r *Reader) readOctetStringHeader(expected *Tag) (h tlvHeader, payload []byte, err error) {
	h, err = r.peekHeader()
	if err != nil {
		return
	}
	if err = expectTag(h.tag, expected, TagOctetString); err != nil {
		return
	}

	if !h.tag.Constructed {
		payload = r.buf[h.contentStart : h.contentStart+h.len.value]
		return
	}

	if r.rule == DER {
		err = malformedf("constructed OCTET STRING forbidden under DER")
		return
	}
	if r.rule == CER && !h.len.isIndefinite {
		err = malformedf("constructed OCTET STRING must use indefinite length under CER")
		return
	}

	body := r.buf[h.contentStart : h.contentStart+h.len.value]
	var segments [][]byte
	if err = collectOctetStringSegments(body, r.rule, 0, &segments); err != nil {
		return
	}
	payload, err = assembleOctetStringSegments(segments, r.rule)
	return
}

// PrimitiveOctetString returns the content bytes of the next TLV if,
// and only if, it is encoded in primitive form. If the encoding is
// constructed, ok is false and no error is raised.
func (r *Reader) PrimitiveOctetString(expected *Tag) (raw []byte, ok bool, err error) {
	h, err := r.peekHeader()
	if err != nil {
		return nil, false, err
	}
	if err = expectTag(h.tag, expected, TagOctetString); err != nil {
		return nil, false, err
	}
	if h.tag.Constructed {
		return nil, false, nil
	}
	raw = r.buf[h.contentStart : h.contentStart+h.len.value]
	r.offset = h.contentEnd
	return raw, true, nil
}

// CopyOctetStringBytes reassembles the next OCTET STRING TLV, whether
// primitive or constructed, into dst. It returns ok=false without
// error if dst is too small to hold the content.
func (r *Reader) CopyOctetStringBytes(dst []byte, expected *Tag) (n int, ok bool, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()

	h, payload, err := r.readOctetStringHeader(expected)
	if err != nil {
		return 0, false, err
	}
	if len(payload) > len(dst) {
		r.offset = save
		return 0, false, nil
	}
	n = copy(dst, payload)
	r.offset = h.contentEnd
	return n, true, nil
}
