//go:build asn1debug

package asn1reader

import (
	"fmt"
	"os"
)

/*
trace.go is the debug build (-tags asn1debug): it prints one-line
diagnostics to stderr for reader construction and decode failures.
Mirrors the teacher's trc_on.go build-tag-gated tracing idiom; this
package carries no external logging dependency, matching the teacher,
which has none for this concern either (see DESIGN.md).
*/

func traceNewReader(rule EncodingRule, n int) {
	fmt.Fprintf(os.Stderr, "asn1reader: new reader rule=%s bytes=%d\n", rule, n)
}

func traceDecodeFail(op string, offset int, err error) {
	fmt.Fprintf(os.Stderr, "asn1reader: %s failed at offset=%d: %v\n", op, offset, err)
}
