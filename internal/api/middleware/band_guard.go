package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/repository"
)

// BandGuard holds the authorization checks that gate band-scoped routes.
// Both assume RequireAuth already attached an authenticated identity.
type BandGuard struct {
	bandRepo repository.BandRepository
}

func NewBandGuard(bandRepo repository.BandRepository) *BandGuard {
	return &BandGuard{bandRepo: bandRepo}
}

// RequireMember admits callers with any membership row for the band.
func (g *BandGuard) RequireMember(next http.Handler) http.Handler {
	return g.require(next, false)
}

// RequireAdmin admits only members whose role is admin or leader.
func (g *BandGuard) RequireAdmin(next http.Handler) http.Handler {
	return g.require(next, true)
}

func (g *BandGuard) require(next http.Handler, adminOnly bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := IdentityFromContext(r.Context()).User()
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		bandID := bandIDFromRequest(r)
		if bandID == "" {
			common.RespondWithError(w, http.StatusBadRequest, "Band ID is required")
			return
		}

		member, err := g.bandRepo.FindMember(r.Context(), bandID, user.ID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				common.RespondWithError(w, http.StatusForbidden, "Not authorized, you are not a member of this band")
			} else {
				common.RespondWithError(w, http.StatusInternalServerError, "Server error")
			}
			return
		}
		if adminOnly && !member.Role.IsAdmin() {
			common.RespondWithError(w, http.StatusForbidden, "Not authorized, you must be an admin or leader of this band")
			return
		}

		ctx := WithMembership(r.Context(), member)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Check verifies membership outside the middleware chain, for routes whose
// band id is only known after loading the resource.
func (g *BandGuard) Check(ctx context.Context, bandID, userID string, adminOnly bool) error {
	member, err := g.bandRepo.FindMember(ctx, bandID, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrForbidden
		}
		return err
	}
	if adminOnly && !member.Role.IsAdmin() {
		return common.ErrForbidden
	}
	return nil
}

// bandIDFromRequest looks for the band id in the URL path, the query string,
// then a JSON body. A consumed body is restored so the handler can decode it
// again.
func bandIDFromRequest(r *http.Request) string {
	if id := chi.URLParam(r, "bandID"); id != "" {
		return id
	}
	if id := r.URL.Query().Get("band_id"); id != "" {
		return id
	}
	if r.Body == nil {
		return ""
	}

	body, err := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		BandID string `json:"bandId"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.BandID
}
