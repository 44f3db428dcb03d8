// Package requestid assigns each request an identifier for log
// correlation. An X-Request-ID header from a trusted proxy is honored;
// otherwise a fresh UUID is generated.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"docket/pkg/requestcontext"
)

const headerName = "X-Request-ID"

// Middleware stores the request id in the context and echoes it on the
// response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerName)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(headerName, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
