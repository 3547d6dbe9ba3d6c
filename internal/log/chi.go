package log

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// ChiMiddleware installs an http middleware that logs any http request.
// Server errors are logged at error level, everything else at info.
func ChiMiddleware(ctx context.Context) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()
			//nolint:contextcheck
			defer func() {
				args := []any{
					"req-id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"uri", r.RequestURI,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"ua", r.Header.Get("User-Agent"),
					"d", time.Since(t1),
				}
				if ww.Status() >= http.StatusInternalServerError {
					Error(ctx, "http req", args...)
					return
				}
				Info(ctx, "http req", args...)
			}()
			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
