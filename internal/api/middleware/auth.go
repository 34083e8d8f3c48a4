package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common/security"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/repository"
)

// Authenticator resolves the bearer token to a stored user and attaches the
// identity to the request context. Every failure is terminal for the
// request: no token, bad signature/expiry, or a user id that no longer
// exists all stop here.
type Authenticator struct {
	userRepo repository.UserRepository
}

func NewAuthenticator(userRepo repository.UserRepository) *Authenticator {
	return &Authenticator{userRepo: userRepo}
}

// RequireAuth assumes jwtauth.Verifier already ran on the router.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "Not authorized, no token provided")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Not authorized, token invalid")
			}
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Not authorized, token invalid")
			return
		}

		user, err := a.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "Not authorized, user not found")
			} else {
				common.RespondWithError(w, http.StatusInternalServerError, "Server error")
			}
			return
		}
		user.HashedPassword = ""

		ctx := WithIdentity(r.Context(), Authenticated(user))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
