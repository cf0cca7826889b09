package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
	err    error
	token  string
}

func (s *stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	s.token = token
	return s.claims, s.err
}

type recordedRequest struct {
	method string
	path   string
	status int
}

type stubObserver struct {
	requests []recordedRequest
}

func (s *stubObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	s.requests = append(s.requests, recordedRequest{method: method, path: path, status: status})
}

func newEngine(middlewares ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares...)
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/students/:id", ok)
	r.POST("/students", ok)
	return r
}

func serve(r *gin.Engine, method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTRequiresBearerToken(t *testing.T) {
	validator := &stubValidator{claims: &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin}}
	r := newEngine(JWT(validator))

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/students", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/students", "Basic abc").Code)

	rec := serve(r, http.MethodPost, "/students", "bearer token-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token-1", validator.token)
}

func TestJWTPropagatesValidationError(t *testing.T) {
	r := newEngine(JWT(&stubValidator{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")}))

	rec := serve(r, http.MethodPost, "/students", "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestRequireRoles(t *testing.T) {
	cases := []struct {
		name   string
		role   models.UserRole
		status int
	}{
		{name: "admin", role: models.RoleAdmin, status: http.StatusOK},
		{name: "faculty", role: models.RoleFaculty, status: http.StatusOK},
		{name: "student", role: models.RoleStudent, status: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			validator := &stubValidator{claims: &models.JWTClaims{UserID: "u1", Role: tc.role}}
			r := newEngine(JWT(validator), RequireRoles(models.RoleAdmin, models.RoleFaculty))
			assert.Equal(t, tc.status, serve(r, http.MethodPost, "/students", "Bearer t").Code)
		})
	}

	r := newEngine(RequireRoles(models.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/students", "").Code)
}

func TestFeatureGate(t *testing.T) {
	disabled := newEngine(FeatureGate(false, "mutations"))
	rec := serve(disabled, http.MethodPost, "/students", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "mutations are disabled")

	enabled := newEngine(FeatureGate(true, "mutations"))
	assert.Equal(t, http.StatusOK, serve(enabled, http.MethodPost, "/students", "").Code)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	observer := &stubObserver{}
	r := newEngine(Metrics(observer))

	serve(r, http.MethodGet, "/students/abc", "")
	serve(r, http.MethodGet, "/nowhere", "")

	require.Len(t, observer.requests, 2)
	assert.Equal(t, recordedRequest{method: http.MethodGet, path: "/students/:id", status: http.StatusOK}, observer.requests[0])
	assert.Equal(t, "unmatched", observer.requests[1].path)
	assert.Equal(t, http.StatusNotFound, observer.requests[1].status)
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var meta map[string]interface{}
	r := gin.New()
	r.Use(WithResponseMeta())
	r.GET("/dashboard", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	serve(r, http.MethodGet, "/dashboard", "")

	assert.Equal(t, true, meta[cacheHitKey])
	assert.Contains(t, meta, processingTimeMS)
}

func TestCurrentUserWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, CurrentUser(c))

	c.Set(ContextUserKey, "not-claims")
	assert.Nil(t, CurrentUser(c))
}
