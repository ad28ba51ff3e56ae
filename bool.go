package asn1reader

/*
bool.go implements the BOOLEAN accessor (§4.4). Grounded on the
teacher's Boolean.read (bool.go), extended to enforce the DER/CER
"only 0x00/0xFF is a legal content octet" rule the teacher's own read
method does not check (see DESIGN.md).
*/

// ReadBoolean decodes the next TLV as BOOLEAN. Under BER any non-zero
// content byte is true; under DER/CER only 0x00 and 0xFF are legal.
func (r *Reader) ReadBoolean(expected *Tag) (bool, error) {
	return r.readBoolean(expected)
}

func (r *Reader) readBoolean(expected *Tag) (v bool, err error) {
	save := r.offset
	defer func() {
		if err != nil {
			r.offset = save
		}
	}()

	h, err := r.peekHeader()
	if err != nil {
		return false, err
	}
	if err = expectTag(h.tag, expected, TagBoolean); err != nil {
		return false, err
	}
	if h.tag.Constructed {
		return false, malformedf("BOOLEAN must be primitive")
	}
	if h.len.value != 1 {
		return false, malformedf("BOOLEAN content length must be 1, got %d", h.len.value)
	}

	b := r.buf[h.contentStart]
	switch b {
	case 0x00:
		v = false
	case 0xFF:
		v = true
	default:
		if r.rule.requiresStrictBoolean() {
			return false, malformedf("BOOLEAN content octet 0x%02X invalid under %s", b, r.rule)
		}
		v = true
	}

	r.offset = h.contentEnd
	return v, nil
}
