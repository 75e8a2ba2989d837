package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gliblio/pkg/platform/sentinel"
)

func newTestStore(t *testing.T, h http.HandlerFunc) *RESTStore {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store, err := NewREST(Config{BaseURL: srv.URL + "/", APIKey: "service-key"}, srv.Client())
	require.NoError(t, err)
	return store
}

func TestFindByHandleFound(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/profiles", r.URL.Path)
		assert.Equal(t, "id", r.URL.Query().Get("select"))
		assert.Equal(t, "eq.alice", r.URL.Query().Get("username"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"id-123"}]`))
	})

	p, err := store.FindByHandle(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "id-123", p.IdentityID)
}

func TestFindByHandleNumericID(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":42}]`))
	})

	p, err := store.FindByHandle(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "42", p.IdentityID)
}

func TestFindByHandleNotFound(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := store.FindByHandle(context.Background(), "bob")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestFindByHandleAmbiguous(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"a"},{"id":"b"}]`))
	})

	_, err := store.FindByHandle(context.Background(), "twins")
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestFindByHandleServerError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusServiceUnavailable)
	})

	_, err := store.FindByHandle(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.NotErrorIs(t, err, sentinel.ErrNotFound)
}

func TestFindByHandleMissingColumn(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"uuid":"x"}]`))
	})

	_, err := store.FindByHandle(context.Background(), "alice")
	assert.Error(t, err)
}

func TestFindByHandleHonoursContextDeadline(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := store.FindByHandle(ctx, "alice")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewRESTRequiresBaseURL(t *testing.T) {
	_, err := NewREST(Config{}, nil)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}
