package crawl

import (
	"net/url"

	"github.com/docdex/docdex"
)

// NormalizeURL canonicalizes a URL for visited-set deduplication: the
// fragment is dropped and query parameters are sorted by key, so URLs
// differing only in fragment or parameter order count as one page.
// Non-HTTP(S) or host-less URLs are rejected.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", docdex.Errorf(docdex.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", docdex.Errorf(docdex.EINVALID, "unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", docdex.Errorf(docdex.EINVALID, "URL %q has no host", rawURL)
	}

	u.Fragment = ""
	if u.RawQuery != "" {
		// url.Values.Encode emits keys in sorted order.
		u.RawQuery = u.Query().Encode()
	}
	return u.String(), nil
}
