//go:build !asn1debug

package asn1reader

/*
trace_off.go is the default build: every diagnostic hook compiles to a
no-op, so production builds pay nothing for the tracing path. Mirrors
the teacher's trc_off.go.
*/

func traceNewReader(rule EncodingRule, n int) {}
func traceDecodeFail(op string, offset int, err error) {}
