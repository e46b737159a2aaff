package middleware

import (
	"net/http"

	"github.com/rs/zerolog"
)

// aggregation parameters worth having on every log line of a request
var queryFields = []string{"key", "axis", "sort", "chart"}

func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logCtx := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr)

			query := req.URL.Query()
			for _, name := range queryFields {
				if v := query.Get(name); v != "" {
					logCtx = logCtx.Str(name, v)
				}
			}
			if req.ContentLength >= 0 {
				logCtx = logCtx.Int64("body_bytes", req.ContentLength)
			}
			reqLogger := logCtx.Logger()

			ctx := reqLogger.WithContext(req.Context())
			req = req.WithContext(ctx)

			reqLogger.Debug().Msg("request")
			next.ServeHTTP(w, req)
		})
	}
}
