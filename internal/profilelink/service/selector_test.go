package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"gliblio/internal/profilelink/handle"
	"gliblio/internal/profilelink/models"
)

var (
	alice    = models.Handle{Raw: "Alice  ", Normalized: "alice"}
	rejected = &handle.RejectionError{Reason: handle.ReasonReservedName}
	classes  = []models.ClientClass{models.ClientAppLinkVerifier, models.ClientNativeApp, models.ClientBrowser}
)

func TestSelectDecisionTable(t *testing.T) {
	ack := NewSelector(Policy{WebFallbackURL: "https://gliblio.com"})
	redirect := NewSelector(Policy{
		WebFallbackURL: "https://gliblio.com",
		AppLink:        AppLinkRedirect,
		Browser:        BrowserRedirect,
	})
	boom := errors.New("store down")

	tests := []struct {
		name   string
		sel    *Selector
		err    error
		lookup models.LookupResult
		class  models.ClientClass
		want   models.Action
	}{
		{"rejected verifier", ack, rejected, models.LookupResult{}, models.ClientAppLinkVerifier, models.RejectNotFound()},
		{"rejected browser", ack, rejected, models.Found("id-1"), models.ClientBrowser, models.RejectNotFound()},

		{"failed verifier", ack, nil, models.Failed(boom), models.ClientAppLinkVerifier, models.DirectSuccess()},
		{"failed native", ack, nil, models.Failed(boom), models.ClientNativeApp, models.DirectSuccess()},
		{"failed browser", ack, nil, models.Failed(boom), models.ClientBrowser,
			models.HomeRedirect("gliblio://home?error=server_error&handle=alice", models.ErrorCodeServerError)},

		{"not found verifier", ack, nil, models.NotFound(), models.ClientAppLinkVerifier, models.DirectSuccess()},
		{"not found native", ack, nil, models.NotFound(), models.ClientNativeApp, models.DirectSuccess()},
		{"not found browser", ack, nil, models.NotFound(), models.ClientBrowser,
			models.HomeRedirect("gliblio://home?error=user_not_found&handle=alice", models.ErrorCodeUserNotFound)},

		{"found verifier ack", ack, nil, models.Found("id-123"), models.ClientAppLinkVerifier, models.DirectSuccess()},
		{"found native ack", ack, nil, models.Found("id-123"), models.ClientNativeApp, models.DirectSuccess()},
		{"found verifier under redirect policy", redirect, nil, models.Found("id-123"), models.ClientAppLinkVerifier,
			models.DirectSuccess()},
		{"found native redirect", redirect, nil, models.Found("id-123"), models.ClientNativeApp,
			models.DeepLinkRedirect("gliblio://profile/id-123")},

		{"found browser fallback page", ack, nil, models.Found("id-123"), models.ClientBrowser,
			models.BrowserFallbackPage("gliblio://profile/id-123", "https://gliblio.com")},
		{"found browser redirect", redirect, nil, models.Found("id-123"), models.ClientBrowser,
			models.DeepLinkRedirect("gliblio://profile/id-123")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.Select(alice, tt.err, tt.lookup, tt.class))
		})
	}
}

func TestSelectIsTotal(t *testing.T) {
	sel := NewSelector(Policy{})
	lookups := []models.LookupResult{
		models.Found("x"), models.NotFound(), models.Failed(errors.New("x")), {}, {Outcome: models.LookupSkipped},
	}
	for _, class := range append(classes, models.ClientClass("")) {
		for _, lookup := range lookups {
			for _, err := range []error{nil, rejected} {
				action := sel.Select(alice, err, lookup, class)
				assert.NotEmpty(t, action.Kind)
			}
		}
	}
}

func TestAppClassesNeverRedirectOnFailure(t *testing.T) {
	for _, sel := range []*Selector{
		NewSelector(Policy{}),
		NewSelector(Policy{AppLink: AppLinkRedirect, Browser: BrowserRedirect}),
	} {
		for _, class := range []models.ClientClass{models.ClientAppLinkVerifier, models.ClientNativeApp} {
			for _, lookup := range []models.LookupResult{models.NotFound(), models.Failed(errors.New("x"))} {
				assert.Equal(t, models.ActionDirectSuccess, sel.Select(alice, nil, lookup, class).Kind)
			}
		}
	}
}

func TestVerifierNeverRedirected(t *testing.T) {
	for _, sel := range []*Selector{
		NewSelector(Policy{}),
		NewSelector(Policy{AppLink: AppLinkRedirect}),
		NewSelector(Policy{AppLink: AppLinkRedirect, Browser: BrowserRedirect}),
	} {
		for _, lookup := range []models.LookupResult{models.Found("id-123"), models.NotFound(), models.Failed(errors.New("x"))} {
			action := sel.Select(alice, nil, lookup, models.ClientAppLinkVerifier)
			assert.Equal(t, models.DirectSuccess(), action)
			assert.Empty(t, action.Target)
		}
	}
}

func TestNewSelectorDefaults(t *testing.T) {
	p := NewSelector(Policy{Scheme: "myapp://", AppLink: "bogus", Browser: "bogus"}).Policy()
	assert.Equal(t, "myapp", p.Scheme)
	assert.Equal(t, DefaultWebFallbackURL, p.WebFallbackURL)
	assert.Equal(t, AppLinkAck, p.AppLink)
	assert.Equal(t, BrowserFallbackPage, p.Browser)

	assert.Equal(t, DefaultScheme, NewSelector(Policy{}).Policy().Scheme)
	assert.Equal(t, "https://example.com/app", NewSelector(Policy{WebFallbackURL: "https://example.com/app"}).Policy().WebFallbackURL)
}

func TestDefaultPolicyFallbackPageCarriesWebFallback(t *testing.T) {
	action := NewSelector(Policy{}).Select(alice, nil, models.Found("id-123"), models.ClientBrowser)
	assert.Equal(t, models.BrowserFallbackPage("gliblio://profile/id-123", DefaultWebFallbackURL), action)
}

func TestLinks(t *testing.T) {
	sel := NewSelector(Policy{Scheme: "gliblio"})

	assert.Equal(t, "gliblio://profile/id-123", sel.ProfileLink("id-123"))
	assert.Equal(t, "gliblio://profile/a%2Fb", sel.ProfileLink("a/b"))
	assert.Equal(t, "gliblio://home", sel.HomeLink("", "alice"))
	assert.Equal(t, "gliblio://home?error=server_error", sel.HomeLink(models.ErrorCodeServerError, ""))
	assert.Equal(t, "gliblio://home?error=user_not_found&handle=bob", sel.HomeLink(models.ErrorCodeUserNotFound, "bob"))
	assert.Equal(t, "gliblio://home?error=user_not_found&handle=a+b", sel.HomeLink(models.ErrorCodeUserNotFound, "a b"))
}

func TestFailure(t *testing.T) {
	sel := NewSelector(Policy{})
	assert.Equal(t, models.DirectSuccess(), sel.Failure(models.Handle{}, models.ClientNativeApp))
	assert.Equal(t,
		models.HomeRedirect("gliblio://home?error=server_error", models.ErrorCodeServerError),
		sel.Failure(models.Handle{}, models.ClientBrowser))
}
