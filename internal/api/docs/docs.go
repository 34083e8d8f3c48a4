// Package docs serves the generated OpenAPI schema.
package docs

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.json
var openapiSchema []byte

// Handler serves the schema as JSON.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openapiSchema)
	}
}
