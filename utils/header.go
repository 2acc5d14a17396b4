package utils

import (
	"net/http"
	"net/textproto"
	"slices"
)

// ReplaceHeader merges src into dst in place.
// Every name present in src replaces all of dst's values for that name,
// keeping src's value order. Names only in dst are left alone.
// Keys of either map are matched by their canonical form; spellings of a
// replaced name other than the canonical one are removed from dst.
func ReplaceHeader(dst, src http.Header) {
	if dst == nil || len(src) == 0 {
		return
	}

	// Raw keys are visited in sorted order so that keys which only differ in
	// case (possible when src is a map literal) merge deterministically.
	keys := make([]string, 0, len(src))
	for k, v := range src {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var spellings map[string][]string
	for k := range dst {
		if name := textproto.CanonicalMIMEHeaderKey(k); name != k {
			if spellings == nil {
				spellings = make(map[string][]string)
			}
			spellings[name] = append(spellings[name], k)
		}
	}

	replaced := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		name := textproto.CanonicalMIMEHeaderKey(k)
		if _, ok := replaced[name]; !ok {
			replaced[name] = struct{}{}
			for _, raw := range spellings[name] {
				delete(dst, raw)
			}
			dst[name] = slices.Clone(src[k])
			continue
		}
		dst[name] = append(dst[name], src[k]...)
	}
}

// MergeHeader merges two http.Header objects into one.
// Names in additional replace those in original.
func MergeHeader(original, additional http.Header) http.Header {
	merged := original.Clone()
	if merged == nil {
		merged = make(http.Header, len(additional))
	}
	ReplaceHeader(merged, additional)
	return merged
}
