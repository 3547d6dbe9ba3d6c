package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/viniapp/viniapp-node/internal/log"
)

// LogMiddleware copies the base logger into every request context and tags it with the
// request id and the operation being served
func LogMiddleware(ctx context.Context) StrictMiddlewareFunc {
	return func(f StrictHandlerFunc, operationID string) StrictHandlerFunc {
		return func(ctxReq context.Context, w http.ResponseWriter, r *http.Request, args interface{}) (interface{}, error) {
			reqCtx := log.With(log.CopyFromContext(ctx, ctxReq),
				"req-id", middleware.GetReqID(ctxReq),
				"operation", operationID,
				"path", r.URL.Path,
			)
			return f(reqCtx, w, r, args)
		}
	}
}
