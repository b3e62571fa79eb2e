package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func TestWindowLimiter(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	l := newWindowLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	ok, _ := l.allow("a")
	assert.True(t, ok)
	ok, _ = l.allow("a")
	assert.True(t, ok)
	ok, ends := l.allow("a")
	assert.False(t, ok)
	assert.Equal(t, now.Add(time.Minute), ends)

	ok, _ = l.allow("b")
	assert.True(t, ok, "keys are independent")

	now = now.Add(61 * time.Second)
	ok, _ = l.allow("a")
	assert.True(t, ok, "new window")

	l.purge(now.Add(2 * time.Minute))
	assert.Empty(t, l.hits)
}

func TestRateLimiter_Returns429(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(1, time.Minute))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func signed(t *testing.T, secret, rol string, exp time.Time) string {
	t.Helper()
	return signedTyp(t, secret, rol, "access", exp)
}

func signedTyp(t *testing.T, secret, rol, typ string, exp time.Time) string {
	t.Helper()
	claims := JWTClaims{
		AdminID: "a1",
		Email:   "admin@example.com",
		Rol:     rol,
		Typ:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestJWTAuthAndRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin", JWTAuth("s3cret"), RequireRole("admin"), func(c *gin.Context) {
		c.String(http.StatusOK, GetClaims(c).Email)
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, "other", "admin", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, "s3cret", "admin", time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"refresh token", "Bearer " + signedTyp(t, "s3cret", "admin", TokenTypeRefresh, time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"basic scheme", "Basic YWRtaW46YWRtaW4=", http.StatusUnauthorized},
		{"wrong role", "Bearer " + signed(t, "s3cret", "viewer", time.Now().Add(time.Hour)), http.StatusForbidden},
		{"ok", "Bearer " + signed(t, "s3cret", "admin", time.Now().Add(time.Hour)), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestParseAccessToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := JWTClaims{Rol: "admin", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = ParseAccessToken("s3cret", tok)
	assert.Error(t, err)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	reg := metrics.NewRegistry()
	r := gin.New()
	r.Use(Metrics(reg))
	r.GET("/orders/:orderId", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"ORD-1", "ORD-2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/"+id, nil))
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(reg.HTTPRequests.WithLabelValues("GET", "/orders/:orderId", "200")))
}
