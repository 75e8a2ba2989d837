package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewRecordsBackendInfo(t *testing.T) {
	reg := New("memory")

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.Info.WithLabelValues("memory")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	reg := New("rest")
	rec := httptest.NewRecorder()

	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gliblio_info{lookup_backend="rest"} 1`)
}
