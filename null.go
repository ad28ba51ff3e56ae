package asn1reader

/*
null.go implements the NULL accessor (§4.7). Grounded on the teacher's
Null.read (null.go), which likewise enforces a zero-length primitive.
*/

// ReadNull consumes the next TLV as NULL: primitive, length 0. Any
// deviation fails.
func (r *Reader) ReadNull(expected *Tag) (err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()

	h, err := r.peekHeader()
	if err != nil {
		return err
	}
	if err = expectTag(h.tag, expected, TagNull); err != nil {
		return err
	}
	if h.tag.Constructed {
		return malformedf("NULL must be primitive")
	}
	if h.len.value != 0 {
		return malformedf("NULL content length must be 0, got %d", h.len.value)
	}

	r.offset = h.contentEnd
	return nil
}
