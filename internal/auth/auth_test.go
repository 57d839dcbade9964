package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orthos/internal/repo"
)

func newEnv() *Env {
	return &Env{JWTKey: []byte("test-key"), Repo: repo.NewMemory()}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	env := newEnv()

	rec := post(env.RegisterHandler, `{"login":"ada","email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var reg TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reg))
	assert.Equal(t, 1, reg.UserID)
	assert.NotEmpty(t, reg.Token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec = post(env.RegisterHandler, `{"login":"ada","email":"x@example.com","password":"secret2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = post(env.LoginHandler, `{"login":"ada","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var login TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&login))
	id, err := env.ParseToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestRegister_Invalid(t *testing.T) {
	env := newEnv()
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"login":`},
		{"missing email", `{"login":"ada","password":"secret1"}`},
		{"short password", `{"login":"ada","email":"a@b.c","password":"123"}`},
		{"blank login", `{"login":"  ","email":"a@b.c","password":"secret1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(env.RegisterHandler, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin_Rejected(t *testing.T) {
	env := newEnv()
	require.Equal(t, http.StatusCreated,
		post(env.RegisterHandler, `{"login":"ada","email":"a@b.c","password":"secret1"}`).Code)

	assert.Equal(t, http.StatusUnauthorized, post(env.LoginHandler, `{"login":"ada","password":"wrong!!"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(env.LoginHandler, `{"login":"bob","password":"secret1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(env.LoginHandler, `{"login":"ada"}`).Code)
}

func TestMiddleware(t *testing.T) {
	env := newEnv()
	token, err := env.IssueToken(7, "ada")
	require.NoError(t, err)

	var seen int
	h := env.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
	}))

	t.Run("bearer", func(t *testing.T) {
		seen = 0
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 7, seen)
	})

	t.Run("cookie", func(t *testing.T) {
		seen = 0
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 7, seen)
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("foreign key", func(t *testing.T) {
		other := &Env{JWTKey: []byte("other-key")}
		forged, err := other.IssueToken(7, "ada")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired", func(t *testing.T) {
		stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": 7,
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}).SignedString(env.JWTKey)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+stale)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserID_Empty(t *testing.T) {
	_, ok := UserID(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "buckets are per address")
}
