package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows the embedded UI to be served from a different origin during
// development. Credentials are allowed so the session cookie travels along.
func Cors(development bool) Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return development
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	return cors.New(options).Handler
}
