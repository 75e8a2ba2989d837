package handler

import (
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

// Site serves the landing page and the Android digital asset links file.
type Site struct {
	assetLinksPath string
	title          string
	logger         *slog.Logger
}

// NewSite constructs the static site handler. assetLinksPath points at the
// assetlinks.json file on disk.
func NewSite(assetLinksPath, title string, logger *slog.Logger) *Site {
	if title == "" {
		title = "Gliblio"
	}
	return &Site{assetLinksPath: assetLinksPath, title: title, logger: logger}
}

// Register mounts the site endpoints. They must be registered alongside the
// profile link routes so they take precedence over the catch-all.
func (s *Site) Register(r chi.Router) {
	r.Get("/", s.HandleLanding)
	r.Get("/.well-known/assetlinks.json", s.HandleAssetLinks)
}

// HandleLanding handles GET /.
func (s *Site) HandleLanding(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := landingTemplate.Execute(w, s.title); err != nil {
		s.logger.ErrorContext(r.Context(), "render landing page", "error", err)
	}
}

// HandleAssetLinks handles GET /.well-known/assetlinks.json.
func (s *Site) HandleAssetLinks(w http.ResponseWriter, r *http.Request) {
	body, err := os.ReadFile(s.assetLinksPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.ErrorContext(r.Context(), "read asset links file", "path", s.assetLinksPath, "error", err)
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not Found"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.}}</title></head>
<body>
    <h1>{{.}}</h1>
    <p>Download our app to view profiles!</p>
</body>
</html>
`))
