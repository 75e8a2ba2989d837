package models

// ActionKind enumerates the responses the selector can choose.
type ActionKind string

const (
	ActionRejectNotFound      ActionKind = "reject_not_found"
	ActionDirectSuccess       ActionKind = "direct_success"
	ActionDeepLinkRedirect    ActionKind = "deep_link_redirect"
	ActionBrowserFallbackPage ActionKind = "browser_fallback_page"
	ActionHomeRedirect        ActionKind = "home_redirect"
)

// Error codes carried on home redirects.
const (
	ErrorCodeServerError  = "server_error"
	ErrorCodeUserNotFound = "user_not_found"
)

// Action is the response chosen for a request.
//
// Target is the deep link for DeepLinkRedirect, BrowserFallbackPage and
// HomeRedirect. FallbackURL is only set for BrowserFallbackPage. ErrorCode is
// only set for HomeRedirect and may be empty.
type Action struct {
	Kind        ActionKind
	Target      string
	FallbackURL string
	ErrorCode   string
}

// RejectNotFound is the action for requests that are not profile handles.
func RejectNotFound() Action {
	return Action{Kind: ActionRejectNotFound}
}

// DirectSuccess acknowledges the request without redirecting.
func DirectSuccess() Action {
	return Action{Kind: ActionDirectSuccess}
}

// DeepLinkRedirect redirects the client to target.
func DeepLinkRedirect(target string) Action {
	return Action{Kind: ActionDeepLinkRedirect, Target: target}
}

// BrowserFallbackPage serves a page that tries target, then fallbackURL.
func BrowserFallbackPage(target, fallbackURL string) Action {
	return Action{Kind: ActionBrowserFallbackPage, Target: target, FallbackURL: fallbackURL}
}

// HomeRedirect sends the client to the app home link.
func HomeRedirect(target, errorCode string) Action {
	return Action{Kind: ActionHomeRedirect, Target: target, ErrorCode: errorCode}
}

// Outcome is everything decided for one request, kept together for logging
// and metrics.
type Outcome struct {
	Action      Action
	ClientClass ClientClass
	Handle      Handle
	Valid       bool
	Lookup      LookupResult
}
