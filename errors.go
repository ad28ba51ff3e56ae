package asn1reader

import (
	"errors"
	"fmt"
	"sync"
)

/*
errors.go defines the two error kinds this package ever returns, in
the spirit of the teacher's mkerr/mkerrf sentinel-caching idiom (err.go
in go-asn1plus), narrowed to exactly the two kinds spec.md calls for:
wire-format violations and caller-side misuse.
*/

/*
ErrMalformedEncoding is the sentinel wrapped by every error describing
a wire-format violation: bad tag or length encoding, non-minimal
length under DER/CER, invalid INTEGER redundancy, a bad BIT STRING
unused-bits count, an unterminated indefinite-length value, a SET OF
ordering violation under DER/CER, a character decoder failure, and so
on. Test with errors.Is(err, ErrMalformedEncoding).
*/
var ErrMalformedEncoding = errors.New("asn1reader: malformed encoding")

/*
ErrInvalidArgument is the sentinel wrapped by every error describing
caller misuse: an unrecognized EncodingRule, an expected Universal tag
whose number does not match the accessor being called, an unknown
character-string tag number, or a flags/non-flags mismatch on an
ENUMERATED accessor. Test with errors.Is(err, ErrInvalidArgument).
*/
var ErrInvalidArgument = errors.New("asn1reader: invalid argument")

var errCache sync.Map // string -> error, mirrors the teacher's mkerrf cache

func malformedf(format string, a ...any) error {
	return cachedWrap(ErrMalformedEncoding, format, a...)
}

func invalidArgf(format string, a ...any) error {
	return cachedWrap(ErrInvalidArgument, format, a...)
}

func cachedWrap(sentinel error, format string, a ...any) error {
	msg := sprintf(format, a...)
	key := sentinel.Error() + ": " + msg
	if v, ok := errCache.Load(key); ok {
		return v.(error)
	}
	err := fmt.Errorf("%w: %s", sentinel, msg)
	errCache.Store(key, err)
	return err
}
