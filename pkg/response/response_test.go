package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestPageWritesWindow(t *testing.T) {
	c, rec := newContext()

	Page(c, []string{}, 0, 100, 0)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []interface{}{}, body["data"])
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, float64(100), body["limit"])
	assert.Equal(t, float64(0), body["skip"])
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestErrorUsesStatusAndMessage(t *testing.T) {
	c, rec := newContext()

	Error(c, appErrors.Clone(appErrors.ErrCollectionNotFound, "Collection grades not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Collection grades not found", body.Error)
	assert.Equal(t, "COLLECTION_NOT_FOUND", body.Code)
}

func TestErrorReportsUnderlyingMessageForInternalFailures(t *testing.T) {
	c, rec := newContext()

	Error(c, fmt.Errorf("server selection timeout"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "server selection timeout")
}
