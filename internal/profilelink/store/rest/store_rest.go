// Package rest looks up profiles through a PostgREST endpoint (as exposed by
// Supabase), authenticated with a bearer API key.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gliblio/internal/profilelink/models"
	"gliblio/pkg/platform/sentinel"
)

const maxErrorBody = 512

// Config locates the profiles table behind a PostgREST endpoint.
type Config struct {
	BaseURL      string // project URL, e.g. https://xyz.supabase.co
	APIKey       string
	Table        string
	HandleColumn string
	IDColumn     string
}

// RESTStore issues one GET per lookup.
type RESTStore struct {
	client   *http.Client
	endpoint string
	apiKey   string
	handle   string
	id       string
}

// NewREST constructs a PostgREST-backed profile store. A nil client uses
// http.DefaultClient; request deadlines come from the caller's context.
func NewREST(cfg Config, client *http.Client) (*RESTStore, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("rest store base url is required: %w", sentinel.ErrUnavailable)
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parse rest base url: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	table := orDefault(cfg.Table, "profiles")
	return &RESTStore{
		client:   client,
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/rest/v1/" + url.PathEscape(table),
		apiKey:   cfg.APIKey,
		handle:   orDefault(cfg.HandleColumn, "username"),
		id:       orDefault(cfg.IDColumn, "id"),
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *RESTStore) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	q := url.Values{}
	q.Set("select", s.id)
	q.Set(s.handle, "eq."+handle)
	q.Set("limit", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("profile request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}

	switch len(rows) {
	case 0:
		return nil, sentinel.ErrNotFound
	case 1:
		id, ok := rows[0][s.id]
		if !ok || id == nil {
			return nil, fmt.Errorf("profile row missing %q column", s.id)
		}
		return &models.Profile{Handle: handle, IdentityID: fmt.Sprint(id)}, nil
	default:
		return nil, fmt.Errorf("handle %q matches multiple profiles: %w", handle, sentinel.ErrConflict)
	}
}
