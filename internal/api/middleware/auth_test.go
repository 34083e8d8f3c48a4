package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common/security"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
)

type stubUserRepo struct {
	user *model.User
	err  error
}

func (r *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, common.ErrNotFound
}

func (r *stubUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.user == nil || r.user.ID != id {
		return nil, common.ErrNotFound
	}
	cp := *r.user
	return &cp, nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *model.User) error { return nil }

// newAuthTestServer mounts RequireAuth behind the token verifier the way the
// real router does, with a terminal handler that echoes the resolved user id.
func newAuthTestServer(t *testing.T, repo *stubUserRepo, tokens *security.TokenManager) *httptest.Server {
	t.Helper()

	auth := NewAuthenticator(repo)

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(tokens.Auth()))
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/protected", func(w http.ResponseWriter, req *http.Request) {
			user, ok := IdentityFromContext(req.Context()).User()
			require.True(t, ok)
			assert.Empty(t, user.HashedPassword)
			common.RespondWithJSON(w, http.StatusOK, map[string]string{"id": user.ID})
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func getProtected(t *testing.T, srv *httptest.Server, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/protected", nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRequireAuthNoToken(t *testing.T) {
	tokens := security.NewTokenManager([]byte("secret"), time.Hour)
	srv := newAuthTestServer(t, &stubUserRepo{}, tokens)

	resp := getProtected(t, srv, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthForeignSecret(t *testing.T) {
	tokens := security.NewTokenManager([]byte("secret"), time.Hour)
	forged := security.NewTokenManager([]byte("other-secret"), time.Hour)
	srv := newAuthTestServer(t, &stubUserRepo{}, tokens)

	token, err := forged.GenerateToken("user-1")
	require.NoError(t, err)

	resp := getProtected(t, srv, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	tokens := security.NewTokenManager([]byte("secret"), time.Hour)
	expired := security.NewTokenManager([]byte("secret"), -time.Hour)
	srv := newAuthTestServer(t, &stubUserRepo{}, tokens)

	token, err := expired.GenerateToken("user-1")
	require.NoError(t, err)

	resp := getProtected(t, srv, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthUnknownUser(t *testing.T) {
	tokens := security.NewTokenManager([]byte("secret"), time.Hour)
	srv := newAuthTestServer(t, &stubUserRepo{}, tokens)

	token, err := tokens.GenerateToken("ghost")
	require.NoError(t, err)

	resp := getProtected(t, srv, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthStoreFailure(t *testing.T) {
	tokens := security.NewTokenManager([]byte("secret"), time.Hour)
	srv := newAuthTestServer(t, &stubUserRepo{err: errors.New("db down")}, tokens)

	token, err := tokens.GenerateToken("user-1")
	require.NoError(t, err)

	resp := getProtected(t, srv, token)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRequireAuthValidToken(t *testing.T) {
	tokens := security.NewTokenManager([]byte("secret"), time.Hour)
	repo := &stubUserRepo{user: &model.User{ID: "user-1", Email: "a@x.com", HashedPassword: "hash"}}
	srv := newAuthTestServer(t, repo, tokens)

	token, err := tokens.GenerateToken("user-1")
	require.NoError(t, err)

	resp := getProtected(t, srv, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
