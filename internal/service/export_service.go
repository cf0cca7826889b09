package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
	"github.com/noah-isme/college-erp-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type pageSource interface {
	Page(ctx context.Context, collection string, limit, skip int) (*models.CollectionPage, error)
	Registry() *CollectionRegistry
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	ContentType() string
}

// ExportFile is a rendered export ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders one accessor page of a collection as CSV or PDF.
type ExportService struct {
	pages  pageSource
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(pages pageSource, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{pages: pages, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// Export renders the formatted page of collection in the requested format.
func (s *ExportService) Export(ctx context.Context, collection, format string, limit, skip int) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	page, err := s.pages.Page(ctx, collection, limit, skip)
	if err != nil {
		return nil, err
	}
	cfg, _ := s.pages.Registry().Lookup(collection)
	dataset := buildDataset(cfg.ExportColumns, page.Records)

	var (
		payload     []byte
		contentType string
	)
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = s.csv.ContentType()
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, cfg.Descriptor.DisplayName)
		contentType = s.pdf.ContentType()
	}
	if err != nil {
		s.logger.Error("export render failed", zap.String("collection", collection), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to render export")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", collection, s.now().UTC().Format("20060102T150405"), format),
		ContentType: contentType,
		Content:     payload,
	}, nil
}

func buildDataset(columns []string, records []models.Document) export.Dataset {
	headers := append([]string{models.FieldID}, columns...)
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		row := make(map[string]string, len(headers))
		for _, header := range headers {
			row[header] = cellValue(record[header])
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func cellValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case models.Ref:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.UTC().Format(isoMillis)
	case []string:
		return strings.Join(v, "; ")
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, cellValue(item))
		}
		return strings.Join(parts, "; ")
	case map[string]interface{}:
		return cellValue(models.Document(v))
	case models.Document:
		if name := v.String("fullName"); name != "" {
			return name
		}
		return v.ID()
	}
	if n, ok := models.ToFloat(value); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}
