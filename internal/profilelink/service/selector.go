package service

import (
	"net/url"
	"strings"

	"gliblio/internal/profilelink/models"
)

// AppLinkStrategy decides what verifier and native clients get for a found profile.
type AppLinkStrategy string

const (
	// AppLinkAck answers with a bare 2xx.
	AppLinkAck AppLinkStrategy = "ack"
	// AppLinkRedirect redirects to the profile deep link.
	AppLinkRedirect AppLinkStrategy = "redirect"
)

// BrowserStrategy decides what browsers get for a found profile.
type BrowserStrategy string

const (
	BrowserRedirect     BrowserStrategy = "redirect"
	BrowserFallbackPage BrowserStrategy = "fallback_page"
)

const (
	DefaultScheme         = "gliblio"
	DefaultWebFallbackURL = "https://gliblio.com"
)

// Policy holds the deployment choices the selector applies.
type Policy struct {
	Scheme         string
	WebFallbackURL string
	AppLink        AppLinkStrategy
	Browser        BrowserStrategy
}

// Selector maps a validated handle, lookup result and client class to a
// response action. It is pure and total.
type Selector struct {
	policy Policy
}

// NewSelector fills unset policy fields with defaults: scheme "gliblio",
// web fallback https://gliblio.com, AppLinkAck and BrowserFallbackPage.
func NewSelector(policy Policy) *Selector {
	policy.Scheme = strings.TrimSuffix(policy.Scheme, "://")
	if policy.Scheme == "" {
		policy.Scheme = DefaultScheme
	}
	if policy.WebFallbackURL == "" {
		policy.WebFallbackURL = DefaultWebFallbackURL
	}
	if policy.AppLink != AppLinkRedirect {
		policy.AppLink = AppLinkAck
	}
	if policy.Browser != BrowserRedirect {
		policy.Browser = BrowserFallbackPage
	}
	return &Selector{policy: policy}
}

// Policy returns the effective policy after defaults.
func (s *Selector) Policy() Policy {
	return s.policy
}

// Select picks the action for one request. validation is the error returned
// by the handle validator; any non-nil value rejects the request.
func (s *Selector) Select(h models.Handle, validation error, lookup models.LookupResult, class models.ClientClass) models.Action {
	if validation != nil {
		return models.RejectNotFound()
	}

	switch lookup.Outcome {
	case models.LookupFound:
		id := lookup.IdentityID
		// Verification requests must get a plain 2xx whatever the policy.
		if class == models.ClientAppLinkVerifier {
			return models.DirectSuccess()
		}
		if class.IsApp() {
			if s.policy.AppLink == AppLinkRedirect {
				return models.DeepLinkRedirect(s.ProfileLink(id))
			}
			return models.DirectSuccess()
		}
		if s.policy.Browser == BrowserRedirect {
			return models.DeepLinkRedirect(s.ProfileLink(id))
		}
		return models.BrowserFallbackPage(s.ProfileLink(id), s.policy.WebFallbackURL)

	case models.LookupNotFound:
		if class.IsApp() {
			return models.DirectSuccess()
		}
		return models.HomeRedirect(s.HomeLink(models.ErrorCodeUserNotFound, h.Normalized), models.ErrorCodeUserNotFound)

	default:
		return s.Failure(h, class)
	}
}

// Failure is the action for a request whose lookup (or handling) failed.
// App clients always get a 2xx so platform verification keeps working.
func (s *Selector) Failure(h models.Handle, class models.ClientClass) models.Action {
	if class.IsApp() {
		return models.DirectSuccess()
	}
	return models.HomeRedirect(s.HomeLink(models.ErrorCodeServerError, h.Normalized), models.ErrorCodeServerError)
}

// ProfileLink builds <scheme>://profile/<identityID>.
func (s *Selector) ProfileLink(identityID string) string {
	return s.policy.Scheme + "://profile/" + url.PathEscape(identityID)
}

// HomeLink builds <scheme>://home, with error and handle query parameters
// when errorCode is set.
func (s *Selector) HomeLink(errorCode, handle string) string {
	link := s.policy.Scheme + "://home"
	if errorCode == "" {
		return link
	}
	q := url.Values{}
	q.Set("error", errorCode)
	if handle != "" {
		q.Set("handle", handle)
	}
	return link + "?" + q.Encode()
}
