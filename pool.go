package asn1reader

import "sync"

/*
pool.go provides a pooled scratch-buffer allocator for constructed
BIT STRING / OCTET STRING reassembly, grounded on the teacher's
bufPool/getBuf/putBuf idiom (pkt.go, pdu.go). Unlike the teacher's
pool, every buffer is zeroed before it is returned to the pool: the
reassembled content may be sensitive cryptographic material (spec.md
§5), and the teacher's pool does not zero on release (see DESIGN.md
for this deliberate deviation).
*/

var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 256)
		return &b
	},
}

// getScratch returns a zero-length, pool-backed []byte with at least
// the requested capacity.
func getScratch(capacity int) *[]byte {
	p := scratchPool.Get().(*[]byte)
	if cap(*p) < capacity {
		*p = make([]byte, 0, capacity)
	} else {
		*p = (*p)[:0]
	}
	return p
}

// putScratch zeroes the buffer's full capacity and returns it to the
// pool. Call via defer immediately after getScratch so the buffer is
// cleared on every exit path, including failure.
func putScratch(p *[]byte) {
	full := (*p)[:cap(*p)]
	zero(full)
	*p = full[:0]
	scratchPool.Put(p)
}
