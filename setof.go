package asn1reader

/*
setof.go implements the SET OF entry point and canonical sort-order
check (§4.12, §6). Grounded on the teacher's set.go marshalSet, which
sorts elements with slices.SortFunc/bytes.Compare on encode — adapted
here into a decode-time order *check*, since the teacher's own
unmarshalSet never validates order on read (see DESIGN.md).
*/

// ReadSetOf requires a constructed SET OF tag and returns a fresh
// sub-reader bounded to its content, advancing the parent cursor past
// the whole TLV. Under DER/CER the elements are additionally verified
// to appear in canonical sort order (§6); skipSortValidation suppresses
// that check for data known to originate from a non-compliant writer.
func (r *Reader) ReadSetOf(skipSortValidation bool, expected *Tag) (sub *Reader, err error) {
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
	if err = expectTag(h.tag, expected, TagSetOf); err != nil {
		return nil, err
	}
	if !h.tag.Constructed {
		return nil, malformedf("SET OF must be constructed")
	}

	content := r.buf[h.contentStart : h.contentStart+h.len.value]

	if !skipSortValidation && r.rule.validatesSetOfOrder() {
		if err = checkSetOfOrder(content, r.rule); err != nil {
			return nil, err
		}
	}

	sub = r.subReader(h.contentStart, h.contentStart+h.len.value)
	r.offset = h.contentEnd
	return sub, nil
}

// checkSetOfOrder walks content as a sequence of encoded elements and
// verifies each is canonically ≤ the next, per the ordering rule in
// §6: pad the shorter element with zero bytes to the longer's length,
// compare lexicographically, and the longer element wins any tie.
func checkSetOfOrder(content []byte, rule EncodingRule) error {
	cursor, err := NewReader(content, rule)
	if err != nil {
		return err
	}

	var prev []byte
	for !cursor.Exhausted() {
		elem, err := cursor.GetEncodedValue()
		if err != nil {
			return err
		}
		if prev != nil && compareCanonical(prev, elem) > 0 {
			return malformedf("SET OF elements out of canonical order")
		}
		prev = elem
	}
	return nil
}

// compareCanonical implements §6's element ordering: pad the shorter
// slice conceptually with trailing zero bytes to the longer's length,
// compare byte-lexicographically, and treat the longer slice as
// greater on a tie.
func compareCanonical(a, b []byte) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var av, bv byte
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	if len(a) == len(b) {
		return 0
	}
	if len(a) < len(b) {
		return -1
	}
	return 1
}
