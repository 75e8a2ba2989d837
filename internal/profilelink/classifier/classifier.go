// Package classifier sorts profile link callers into app-link verifiers,
// native app traffic and browsers.
package classifier

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"gliblio/internal/profilelink/models"
	platformstrings "gliblio/pkg/platform/strings"
)

// DefaultVerifierTokens mark embedded web views and domain verification
// services. Matched case-insensitively against the User-Agent.
var DefaultVerifierTokens = []string{
	"; wv)",
	"webview",
	"google-digital-asset-links",
	"googleassociationservice",
	"aasa-bot",
	"com.apple.swcd",
}

// DefaultNativeTokens mark mobile operating systems, mobile runtimes and
// native HTTP clients.
var DefaultNativeTokens = []string{
	"android",
	"iphone",
	"ipad",
	"ipod",
	"dalvik",
	"okhttp",
	"cfnetwork",
	"darwin",
	"expo",
	"react-native",
}

// DefaultVerificationHeaders are request headers whose presence marks a
// platform verification request.
var DefaultVerificationHeaders = []string{"X-App-Link-Verification"}

const requestedWithHeader = "X-Requested-With"

// Config extends the default token lists.
type Config struct {
	VerifierTokens      []string
	NativeTokens        []string
	VerificationHeaders []string
}

// Classifier is safe for concurrent use; it holds no mutable state.
type Classifier struct {
	verifierTokens []string
	nativeTokens   []string
	headers        []string
}

// New builds a classifier from the defaults plus any extra tokens in cfg.
func New(cfg Config) *Classifier {
	return &Classifier{
		verifierTokens: platformstrings.MergeLower(DefaultVerifierTokens, cfg.VerifierTokens),
		nativeTokens:   platformstrings.MergeLower(DefaultNativeTokens, cfg.NativeTokens),
		headers:        platformstrings.MergeLower(DefaultVerificationHeaders, cfg.VerificationHeaders),
	}
}

// Classify returns the client class for a request. Verifier signals are
// checked before native ones because verifier traffic often carries a mobile
// OS user agent.
func (c *Classifier) Classify(userAgent string, headers http.Header) models.ClientClass {
	ua := strings.ToLower(userAgent)

	if c.hasVerificationHeader(headers) || containsAny(ua, c.verifierTokens) {
		return models.ClientAppLinkVerifier
	}
	if ua == "" {
		return models.ClientBrowser
	}
	if containsAny(ua, c.nativeTokens) {
		return models.ClientNativeApp
	}
	parsed := useragent.New(userAgent)
	if parsed.Mobile() && !parsed.Bot() {
		return models.ClientNativeApp
	}
	return models.ClientBrowser
}

func (c *Classifier) hasVerificationHeader(headers http.Header) bool {
	if headers == nil {
		return false
	}
	for _, name := range c.headers {
		if headers.Get(name) != "" {
			return true
		}
	}
	// Android web views send the embedding app's package name here; XHR
	// libraries send "XMLHttpRequest".
	if v := headers.Get(requestedWithHeader); v != "" &&
		!strings.EqualFold(v, "XMLHttpRequest") && strings.Contains(v, ".") {
		return true
	}
	return false
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if t != "" && strings.Contains(s, t) {
			return true
		}
	}
	return false
}
