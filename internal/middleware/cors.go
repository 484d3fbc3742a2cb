package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// AllowAllOrigins returns a CORS middleware that accepts requests from any origin
// without credentials and answers preflight requests itself.
func AllowAllOrigins() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
	})
}
