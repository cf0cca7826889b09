package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-erp-api/internal/models"
	"github.com/noah-isme/college-erp-api/internal/service"
	"github.com/noah-isme/college-erp-api/pkg/response"
)

type dataReader interface {
	Collections(ctx context.Context) ([]models.CollectionDescriptor, error)
	Window(rawLimit, rawSkip string) (int, int)
	Page(ctx context.Context, collection string, limit, skip int) (*models.CollectionPage, error)
}

type collectionExporter interface {
	Export(ctx context.Context, collection, format string, limit, skip int) (*service.ExportFile, error)
}

// DataHandler serves the collection catalogue and generic collection reads.
type DataHandler struct {
	data     dataReader
	exporter collectionExporter
}

// NewDataHandler constructs DataHandler.
func NewDataHandler(data dataReader, exporter collectionExporter) *DataHandler {
	return &DataHandler{data: data, exporter: exporter}
}

// Collections godoc
// @Summary List browsable collections
// @Tags Data
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /collections [get]
func (h *DataHandler) Collections(c *gin.Context) {
	descriptors, err := h.data.Collections(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Collections(c, descriptors)
}

// List godoc
// @Summary Read one page of a collection
// @Description Records are newest first with references expanded. Invalid or non-positive limits fall back to the default.
// @Tags Data
// @Produce json
// @Param collection path string true "Collection name"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param skip query int false "Records to skip"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /data/{collection} [get]
func (h *DataHandler) List(c *gin.Context) {
	limit, skip := h.data.Window(c.Query("limit"), c.Query("skip"))
	page, err := h.data.Page(c.Request.Context(), c.Param("collection"), limit, skip)
	if err != nil {
		response.Error(c, err)
		return
	}
	records := page.Records
	if records == nil {
		records = []models.Document{}
	}
	response.Page(c, records, page.TotalCount, page.Limit, page.Skip)
}

// Export godoc
// @Summary Export one page of a collection
// @Tags Data
// @Produce text/csv
// @Produce application/pdf
// @Param collection path string true "Collection name"
// @Param format query string false "csv (default) or pdf"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param skip query int false "Records to skip"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /data/{collection}/export [get]
func (h *DataHandler) Export(c *gin.Context) {
	limit, skip := h.data.Window(c.Query("limit"), c.Query("skip"))
	file, err := h.exporter.Export(c.Request.Context(), c.Param("collection"), c.Query("format"), limit, skip)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
