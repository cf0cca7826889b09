package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/handler"
	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

type rejectAll struct{}

func (rejectAll) ValidateToken(string) (*models.JWTClaims, error) {
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

func newEngine(opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := Handlers{
		Data:         handler.NewDataHandler(nil, nil),
		Dashboard:    handler.NewDashboardHandler(nil),
		Students:     handler.NewStudentHandler(nil),
		Faculty:      handler.NewFacultyHandler(nil),
		Courses:      handler.NewCourseHandler(nil),
		Attendance:   handler.NewAttendanceHandler(nil),
		LeaveRequest: handler.NewLeaveRequestHandler(nil),
		Timetables:   handler.NewTimetableHandler(nil),
		Analytics:    handler.NewAnalyticsHandler(nil),
		Health:       handler.NewHealthHandler(nil, nil, nil),
	}
	return Setup(opts, h, rejectAll{}, nil, zap.NewNop())
}

func status(r http.Handler, method, path string) int {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec.Code
}

func TestWritesAreGatedByMutationsFlag(t *testing.T) {
	disabled := newEngine(Options{})
	assert.Equal(t, http.StatusForbidden, status(disabled, http.MethodPost, "/api/students"))
	assert.Equal(t, http.StatusForbidden, status(disabled, http.MethodPatch, "/api/leaverequests/l1/decision"))

	enabled := newEngine(Options{EnableMutations: true})
	assert.Equal(t, http.StatusUnauthorized, status(enabled, http.MethodPost, "/api/students"))
	assert.Equal(t, http.StatusUnauthorized, status(enabled, http.MethodPost, "/api/timetables"))
}

func TestReadRoutesAreNotGated(t *testing.T) {
	r := newEngine(Options{})

	assert.Equal(t, http.StatusBadRequest, status(r, http.MethodGet, "/api/students/search?minRoll=x"))
	assert.Equal(t, http.StatusBadRequest, status(r, http.MethodGet, "/api/attendance?studentRoll=x"))
	assert.Equal(t, http.StatusBadRequest, status(r, http.MethodGet, "/api/analytics/low-attendance?threshold=high"))
	assert.Equal(t, http.StatusForbidden, status(r, http.MethodDelete, "/api/students/s1"))
}

func TestDashboardRouteFollowsFlag(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, status(newEngine(Options{}), http.MethodGet, "/api/dashboard"))
	assert.Equal(t, http.StatusInternalServerError, status(newEngine(Options{EnableDashboard: true}), http.MethodGet, "/api/dashboard"))
}

func TestProbesAndPrefix(t *testing.T) {
	r := newEngine(Options{APIPrefix: "/v2"})

	assert.Equal(t, http.StatusOK, status(r, http.MethodGet, "/health"))
	assert.Equal(t, http.StatusOK, status(r, http.MethodGet, "/ready"))
	assert.Equal(t, http.StatusNotFound, status(r, http.MethodGet, "/docs/index.html"))
	assert.Equal(t, http.StatusForbidden, status(r, http.MethodPost, "/v2/courses"))
}
