package domain

import (
	"net/url"
	"strings"
)

// Topic is one followed super-topic the account can check into. Topics are
// immutable once constructed.
type Topic struct {
	Title       string
	ContainerID string
	OID         string
	Scheme      string
}

// ContainerIDFromOID extracts the container id from a composite oid such as
// "100808:2309xxxxx". It returns the substring after the last separator, or
// "" when the oid has no separator at all.
func ContainerIDFromOID(oid string) string {
	idx := strings.LastIndex(oid, ":")
	if idx < 0 {
		return ""
	}
	return oid[idx+1:]
}

// DecodeScheme percent-decodes a deep-link scheme. Invalid escape sequences
// leave the raw value untouched.
func DecodeScheme(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
