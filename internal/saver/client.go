package saver

import (
	"net/http"
	"time"
)

// noReferrerTransport strips the Referer header from every request it sends, including those generated by following
// redirects. Media hosts with hotlink protection reject requests that carry a foreign referrer.
type noReferrerTransport struct {
	next http.RoundTripper
}

func (t *noReferrerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if _, ok := req.Header["Referer"]; ok {
		req = req.Clone(req.Context())
		req.Header.Del("Referer")
	}
	return t.next.RoundTrip(req)
}

// NewClient returns an http.Client that never sends a Referer header. A zero timeout means no timeout.
func NewClient(timeout time.Duration) *http.Client {
	return WrapClient(&http.Client{Timeout: timeout})
}

// WrapClient returns a copy of client whose transport never sends a Referer header.
func WrapClient(client *http.Client) *http.Client {
	c := *client
	next := c.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	if _, ok := next.(*noReferrerTransport); !ok {
		c.Transport = &noReferrerTransport{next: next}
	}
	return &c
}
