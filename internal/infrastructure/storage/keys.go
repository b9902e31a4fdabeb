package storage

import (
	"net/url"
	"strings"
)

// ObjectKeyFromURL derives the bucket-relative object key from a
// stored reference. References are usually full public URLs of the
// form scheme://host/<bucket>/<key>; a reference without a scheme is
// treated as an already-bare key (older rows stored the raw path).
func ObjectKeyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return strings.TrimPrefix(raw, "/")
	}

	path := strings.TrimPrefix(u.Path, "/")
	// Drop the bucket segment.
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
