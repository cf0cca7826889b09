package service

import (
	"github.com/noah-isme/college-erp-api/internal/models"
)

// isoMillis is the canonical timestamp layout of formatted records.
const isoMillis = "2006-01-02T15:04:05.000Z"

func formatAttendance(doc models.Document) models.Document {
	if pct, ok := doc.Number("attendancePercentage"); ok {
		doc["attendancePercentage"] = models.RoundTo2(pct)
	}
	return doc
}

func formatLeaveRequest(doc models.Document) models.Document {
	for _, field := range []string{"startDate", "endDate", "handledAt"} {
		value, present := doc[field]
		if !present || value == nil {
			continue
		}
		if ts, ok := models.ToTime(value); ok {
			doc[field] = ts.Format(isoMillis)
		}
	}
	return doc
}

func formatCourse(doc models.Document) models.Document {
	name := models.FacultyNotAssigned
	if faculty := asDocument(doc["facultyInCharge"]); faculty != nil {
		if fullName := faculty.String("fullName"); fullName != "" {
			name = fullName
		}
	}
	doc["facultyName"] = name
	return doc
}

func asDocument(value interface{}) models.Document {
	switch v := value.(type) {
	case models.Document:
		return v
	case map[string]interface{}:
		return models.Document(v)
	}
	return nil
}
