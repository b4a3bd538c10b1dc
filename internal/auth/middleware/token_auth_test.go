package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liminal-studio/liminal-backend/internal/auth"
	"github.com/liminal-studio/liminal-backend/internal/auth/token"
)

type stubRoles struct {
	admins map[string]bool
	err    error
	calls  int
}

func (s *stubRoles) IsAdmin(_ context.Context, email string) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return s.admins[email], nil
}

func newIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	iss, err := token.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return iss
}

func issue(t *testing.T, iss *token.Issuer, email string) string {
	t.Helper()
	raw, err := iss.Issue(map[string]interface{}{"email": email})
	require.NoError(t, err)
	return raw
}

func newRouter(iss *token.Issuer, roles RoleChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": auth.UserEmail(c)})
	}

	r.GET("/me", VerifyToken(iss, ""), ok)
	r.GET("/self/:email", VerifyToken(iss, ""), RequireSelf("email"), ok)
	r.GET("/admin", append(Admin(iss, "", roles), ok)...)
	r.GET("/custom", VerifyToken(iss, "X-Access-Token"), ok)
	return r
}

func do(r *gin.Engine, path, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if value != "" {
		req.Header.Set(header, value)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestVerifyToken(t *testing.T) {
	iss := newIssuer(t)
	r := newRouter(iss, &stubRoles{})
	raw := issue(t, iss, "ada@example.com")

	t.Run("missing token", func(t *testing.T) {
		rr := do(r, "/me", "Authorization", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"message":"Unauthorize Access"}`, rr.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		rr := do(r, "/me", "Authorization", "garbage")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other, err := token.NewIssuer("other-secret", time.Hour)
		require.NoError(t, err)
		rr := do(r, "/me", "Authorization", issue(t, other, "ada@example.com"))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("raw token", func(t *testing.T) {
		rr := do(r, "/me", "Authorization", raw)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"email":"ada@example.com"}`, rr.Body.String())
	})

	t.Run("bearer prefix tolerated", func(t *testing.T) {
		rr := do(r, "/me", "Authorization", "Bearer "+raw)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("custom header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(r, "/custom", "Authorization", raw).Code)
		assert.Equal(t, http.StatusOK, do(r, "/custom", "X-Access-Token", raw).Code)
	})
}

func TestRequireSelf(t *testing.T) {
	iss := newIssuer(t)
	r := newRouter(iss, &stubRoles{})
	raw := issue(t, iss, "ada@example.com")

	assert.Equal(t, http.StatusOK, do(r, "/self/ada@example.com", "Authorization", raw).Code)

	rr := do(r, "/self/grace@example.com", "Authorization", raw)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"message":"Forbidden Access"}`, rr.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(r, "/self/ada@example.com", "Authorization", "").Code)
}

func TestRequireAdmin(t *testing.T) {
	iss := newIssuer(t)

	t.Run("admin passes", func(t *testing.T) {
		roles := &stubRoles{admins: map[string]bool{"ada@example.com": true}}
		r := newRouter(iss, roles)
		rr := do(r, "/admin", "Authorization", issue(t, iss, "ada@example.com"))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, roles.calls)
	})

	t.Run("non admin is forbidden", func(t *testing.T) {
		roles := &stubRoles{admins: map[string]bool{}}
		r := newRouter(iss, roles)
		rr := do(r, "/admin", "Authorization", issue(t, iss, "grace@example.com"))
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.JSONEq(t, `{"message":"Forbidden Access"}`, rr.Body.String())
	})

	t.Run("token checked before role", func(t *testing.T) {
		roles := &stubRoles{admins: map[string]bool{"ada@example.com": true}}
		r := newRouter(iss, roles)
		rr := do(r, "/admin", "Authorization", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Zero(t, roles.calls)
	})

	t.Run("lookup failure is internal", func(t *testing.T) {
		roles := &stubRoles{err: errors.New("server selection timeout")}
		r := newRouter(iss, roles)
		rr := do(r, "/admin", "Authorization", issue(t, iss, "ada@example.com"))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "server selection")
	})
}
