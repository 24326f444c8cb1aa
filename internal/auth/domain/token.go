package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names carried by signed playback URLs.
const (
	ExpiryParam    = "exp"
	SignatureParam = "sig"
)

// CapabilityToken is a stateless credential granting access to a single resource path
// until ExpiresAt. It is never persisted: validity depends only on its fields and the
// process-wide signing secret.
type CapabilityToken struct {
	Path      string // Resource path, e.g. /hls/abc/master.m3u8
	ExpiresAt int64  // Unix seconds
	Signature string // Hex HMAC-SHA256 over Path + ":" + ExpiresAt
}

// Expiry returns ExpiresAt in its decimal wire form.
func (t *CapabilityToken) Expiry() string {
	return strconv.FormatInt(t.ExpiresAt, 10)
}

// SignedPath renders the token in its wire format: <path>?exp=<unix>&sig=<hex>.
func (t *CapabilityToken) SignedPath() string {
	var b strings.Builder
	b.WriteString(t.Path)
	b.WriteString("?" + ExpiryParam + "=")
	b.WriteString(t.Expiry())
	b.WriteString("&" + SignatureParam + "=")
	b.WriteString(t.Signature)
	return b.String()
}

// ResourceRequest is the path/exp/sig triple extracted from a proxied request.
type ResourceRequest struct {
	Path      string
	Expiry    string
	Signature string
}

// ParseResourceURI extracts a ResourceRequest from an original request URI such as
// "/hls/abc/seg1.ts?exp=1700000000&sig=ab12...". Returns false when the URI cannot be
// parsed or either query parameter is missing. Path keeps its percent-encoding as sent.
func ParseResourceURI(rawURI string) (ResourceRequest, bool) {
	if rawURI == "" {
		return ResourceRequest{}, false
	}

	u, err := url.ParseRequestURI(rawURI)
	if err != nil {
		return ResourceRequest{}, false
	}

	query := u.Query()
	exp := query.Get(ExpiryParam)
	sig := query.Get(SignatureParam)
	if exp == "" || sig == "" {
		return ResourceRequest{}, false
	}

	return ResourceRequest{Path: u.EscapedPath(), Expiry: exp, Signature: sig}, true
}

// AccessDecision is the outcome of authorizing a resource request.
type AccessDecision string

const (
	// AccessAllow grants the request.
	AccessAllow AccessDecision = "allow"
	// AccessDeny refuses the request.
	AccessDeny AccessDecision = "deny"
)

// Allowed reports whether the decision grants access.
func (d AccessDecision) Allowed() bool {
	return d == AccessAllow
}
