package asn1reader

/*
sequence.go implements the SEQUENCE entry point (§4.12). Grounded on
the teacher's sub-reader-bounded-by-content-length idiom in seq.go,
stripped of the reflection-based struct marshaling that idiom serves
in the teacher (this module has no struct-tag marshaler; see
DESIGN.md).
*/

// ReadSequence requires a constructed SEQUENCE tag and returns a fresh
// sub-reader bounded to its content, advancing the parent cursor past
// the whole TLV (including the trailing end-of-contents octets for an
// indefinite-length encoding).
func (r *Reader) ReadSequence(expected *Tag) (sub *Reader, err error) {
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
	if err = expectTag(h.tag, expected, TagSequence); err != nil {
		return nil, err
	}
	if !h.tag.Constructed {
		return nil, malformedf("SEQUENCE must be constructed")
	}

	sub = r.subReader(h.contentStart, h.contentStart+h.len.value)
	r.offset = h.contentEnd
	return sub, nil
}
