// Package models holds the request-scoped values flowing through profile link
// resolution. None of them are persisted.
package models

// Handle is a normalized candidate profile identifier taken from a request path.
type Handle struct {
	Raw        string
	Normalized string
}

func (h Handle) String() string {
	return h.Normalized
}

// Profile is the record returned by a profile store for a handle.
type Profile struct {
	Handle     string
	IdentityID string
}

// ClientClass classifies the caller of a profile link.
type ClientClass string

const (
	ClientAppLinkVerifier ClientClass = "app_link_verifier"
	ClientNativeApp       ClientClass = "native_app"
	ClientBrowser         ClientClass = "browser"
)

// IsApp reports whether the class belongs to platform or app traffic that must
// always receive a redirect-free 2xx.
func (c ClientClass) IsApp() bool {
	return c == ClientAppLinkVerifier || c == ClientNativeApp
}
