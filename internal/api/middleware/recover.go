package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
)

// Recoverer is the final catch-all: it logs the panic and answers with a
// generic 500. Stack detail reaches the client only in development mode.
func Recoverer(logger zerolog.Logger, development bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					stack := debug.Stack()
					logger.Error().
						Interface("panic", rec).
						Bytes("stack", stack).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					if development {
						common.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
							"message": "Something went wrong!",
							"error":   fmt.Sprintf("%v", rec),
							"stack":   string(stack),
						})
						return
					}
					common.RespondWithError(w, http.StatusInternalServerError, "Something went wrong!")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
