package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
)

// Envelope represents the common response contract consumed by the dashboard panels.
type Envelope struct {
	Success     bool                   `json:"success"`
	Data        interface{}            `json:"data,omitempty"`
	Collections interface{}            `json:"collections,omitempty"`
	Count       *int64                 `json:"count,omitempty"`
	Limit       *int                   `json:"limit,omitempty"`
	Skip        *int                   `json:"skip,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Code        string                 `json:"code,omitempty"`
	Meta        map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional metadata.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{Success: true, Data: data}
	if len(meta) > 0 && len(meta[0]) > 0 {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Page sends one page of records together with the total count and the applied window.
func Page(c *gin.Context, data interface{}, count int64, limit, skip int) {
	noStore(c)
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count, Limit: &limit, Skip: &skip})
}

// Collections sends the collection catalogue.
func Collections(c *gin.Context, collections interface{}) {
	noStore(c)
	c.JSON(http.StatusOK, Envelope{Success: true, Collections: collections})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	c.JSON(appErr.Status, Envelope{Success: false, Error: appErr.Error(), Code: appErr.Code})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
