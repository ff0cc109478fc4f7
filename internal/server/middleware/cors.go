package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS applies the browser policy the dashboard frontend depends on. The
// default is allow-all with credentials; deployments can pin origins via
// cors.allowed_origins. All headers stay allowed because callers send their
// own x-rapidapi-key.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
