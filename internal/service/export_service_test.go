package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-erp-api/internal/models"
	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
	"github.com/noah-isme/college-erp-api/pkg/export"
)

type failingPDF struct{}

func (failingPDF) Render(export.Dataset, string) ([]byte, error) { return nil, errors.New("font missing") }
func (failingPDF) ContentType() string                          { return "application/pdf" }

func newExportFixture(pdf pdfRenderer) (*memoryStore, *ExportService) {
	store := newMemoryStore()
	svc := NewExportService(newDataService(store), nil, pdf, nil)
	svc.now = func() time.Time { return time.Date(2025, time.March, 4, 5, 6, 7, 0, time.UTC) }
	return store, svc
}

func TestExportCSVUsesFormattedRecords(t *testing.T) {
	store, svc := newExportFixture(nil)
	facultyIDs := store.seed(models.CollectionFaculties, models.Document{"fullName": "Dr. Meena"})
	store.seed(models.CollectionCourses,
		models.Course{Code: "CS1", Title: "Networks", Credits: 4, Semester: 7, FacultyInCharge: facultyIDs[0], IsActive: true}.Document(),
		models.Course{Code: "CS2", Title: "Compilers, Advanced", Credits: 3, Semester: 7}.Document(),
	)

	file, err := svc.Export(context.Background(), models.CollectionCourses, "CSV", 100, 0)
	require.NoError(t, err)
	assert.Equal(t, "courses_20250304T050607.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "_id,code,title,credits,semester,facultyName,isActive", lines[0])
	assert.Equal(t, `id-003,CS2,"Compilers, Advanced",3,7,Not Assigned,false`, lines[1])
	assert.Equal(t, "id-002,CS1,Networks,4,7,Dr. Meena,true", lines[2])
}

func TestExportRejectsUnknownFormatAndCollection(t *testing.T) {
	_, svc := newExportFixture(nil)

	_, err := svc.Export(context.Background(), models.CollectionStudents, "xlsx", 100, 0)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Export(context.Background(), "grades", "csv", 100, 0)
	assert.True(t, errors.Is(err, appErrors.ErrCollectionNotFound))
}

func TestExportPDFRenderFailureIsInternal(t *testing.T) {
	_, svc := newExportFixture(failingPDF{})

	_, err := svc.Export(context.Background(), models.CollectionStudents, "pdf", 100, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
	assert.Contains(t, err.Error(), "font missing")
}

func TestCellValue(t *testing.T) {
	ts := time.Date(2024, time.July, 1, 8, 30, 0, 0, time.UTC)

	assert.Equal(t, "", cellValue(nil))
	assert.Equal(t, "2024-07-01T08:30:00.000Z", cellValue(ts))
	assert.Equal(t, "66.67", cellValue(66.67))
	assert.Equal(t, "Cloud; Networks", cellValue([]string{"Cloud", "Networks"}))
	assert.Equal(t, "Ravi", cellValue(models.Document{"_id": "s1", "fullName": "Ravi"}))
	assert.Equal(t, "s1", cellValue(map[string]interface{}{"_id": "s1"}))
}
