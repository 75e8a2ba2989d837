// Package requestid tags every request with an ID, reusing a well-formed
// inbound X-Request-ID when a proxy already set one.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"gliblio/pkg/requestcontext"
)

const Header = "X-Request-ID"

const maxInboundLength = 128

// Middleware stores the request ID in the context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > maxInboundLength {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
