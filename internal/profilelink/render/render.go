// Package render writes selected profile link actions as HTTP responses.
package render

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"gliblio/internal/profilelink/models"
)

// HomeStrategy decides how home redirects are delivered.
type HomeStrategy string

const (
	// HomeRedirectStatus answers with an HTTP redirect.
	HomeRedirectStatus HomeStrategy = "redirect"
	// HomePage answers 200 with a page that navigates via script.
	HomePage HomeStrategy = "page"
)

const DefaultFallbackDelay = 2000 * time.Millisecond

// Options holds the deployment choices for rendering.
type Options struct {
	RedirectStatus int // http.StatusMovedPermanently or http.StatusFound
	Home           HomeStrategy
	FallbackDelay  time.Duration
	Title          string
}

// Renderer turns actions into responses. It is safe for concurrent use.
type Renderer struct {
	opts Options
}

// New builds a renderer, defaulting to 302 redirects, redirect-style home
// links and a 2s browser fallback delay.
func New(opts Options) *Renderer {
	if opts.RedirectStatus != http.StatusMovedPermanently {
		opts.RedirectStatus = http.StatusFound
	}
	if opts.Home != HomePage {
		opts.Home = HomeRedirectStatus
	}
	if opts.FallbackDelay <= 0 {
		opts.FallbackDelay = DefaultFallbackDelay
	}
	if opts.Title == "" {
		opts.Title = "Gliblio"
	}
	return &Renderer{opts: opts}
}

// Render writes action to w.
func (r *Renderer) Render(w http.ResponseWriter, action models.Action) {
	w.Header().Set("Cache-Control", "no-store")

	switch action.Kind {
	case models.ActionDirectSuccess:
		writeText(w, http.StatusOK, "OK")

	case models.ActionDeepLinkRedirect:
		r.redirect(w, action.Target)

	case models.ActionBrowserFallbackPage:
		// A fallback page with nowhere to fall back to is just a redirect.
		if action.FallbackURL == "" {
			r.redirect(w, action.Target)
			return
		}
		r.page(w, pageData{
			Title:       r.opts.Title,
			Target:      template.URL(action.Target),
			FallbackURL: action.FallbackURL,
			DelayMS:     r.opts.FallbackDelay.Milliseconds(),
		})

	case models.ActionHomeRedirect:
		if r.opts.Home == HomePage {
			r.page(w, pageData{Title: r.opts.Title, Target: template.URL(action.Target)})
			return
		}
		r.redirect(w, action.Target)

	default:
		writeText(w, http.StatusNotFound, "Not Found")
	}
}

// RedirectStatus returns the configured redirect status code.
func (r *Renderer) RedirectStatus() int {
	return r.opts.RedirectStatus
}

func (r *Renderer) redirect(w http.ResponseWriter, target string) {
	// http.Redirect would rewrite relative-looking custom-scheme targets, so
	// the Location header is set directly.
	w.Header().Set("Location", target)
	w.WriteHeader(r.opts.RedirectStatus)
}

func (r *Renderer) page(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		// Template data is plain strings; a failure here is a programming
		// error. Fall back to the bare acknowledgment.
		writeText(w, http.StatusOK, "OK")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Target is built by the selector from the configured scheme and an escaped
// identity ID, so it is trusted as a URL even though the scheme is custom.
type pageData struct {
	Title       string
	Target      template.URL
	FallbackURL string
	DelayMS     int64
}

var pageTemplate = template.Must(template.New("deeplink").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Opening the app&hellip; <a href="{{.Target}}">Tap here if nothing happens.</a></p>
<script>
(function () {
  window.location.href = {{.Target}};
{{- if .FallbackURL}}
  var hidden = false;
  document.addEventListener("visibilitychange", function () {
    if (document.hidden) { hidden = true; }
  });
  setTimeout(function () {
    if (!hidden) { window.location.href = {{.FallbackURL}}; }
  }, {{.DelayMS}});
{{- end}}
})();
</script>
</body>
</html>
`))
