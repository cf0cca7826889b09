package models

import (
	"errors"
	"strings"
	"time"
)

// Stored field names shared by every collection.
const (
	FieldID        = "_id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

var (
	// ErrDocumentNotFound is returned by stores when no document matches.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned by stores when a unique index rejects a write.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Document is a stored record in generic form keyed by stored field names.
type Document map[string]interface{}

// ID returns the string identifier of the document.
func (d Document) ID() string {
	if d == nil {
		return ""
	}
	switch v := d[FieldID].(type) {
	case string:
		return v
	case Ref:
		return string(v)
	}
	return ""
}

// Clone returns a shallow copy.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// String returns the string value stored under key, or "".
func (d Document) String(key string) string {
	switch v := d[key].(type) {
	case string:
		return v
	case Ref:
		return string(v)
	}
	return ""
}

// Number returns the numeric value stored under key regardless of the store's numeric encoding.
func (d Document) Number(key string) (float64, bool) {
	return ToFloat(d[key])
}

// Ref is an identifier pointing at a document of another collection.
type Ref string

// RefOrNil returns nil for an empty reference so stores persist null.
func RefOrNil(id string) interface{} {
	if id == "" {
		return nil
	}
	return Ref(id)
}

// Filter holds conditions on top-level stored fields. Plain values match by equality;
// Range and Contains values select the matching operator.
type Filter map[string]interface{}

// Range matches numeric fields between Min and Max inclusive. A nil bound is open.
type Range struct {
	Min *float64
	Max *float64
}

// Includes reports whether n lies within the range.
func (r Range) Includes(n float64) bool {
	if r.Min != nil && n < *r.Min {
		return false
	}
	if r.Max != nil && n > *r.Max {
		return false
	}
	return true
}

// Contains matches string fields containing the text, ignoring case.
type Contains string

// Matches reports whether s contains the text, ignoring case.
func (c Contains) Matches(s string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(string(c)))
}

// FindOptions selects one page of a collection ordered by creation time, newest first.
type FindOptions struct {
	Filter Filter
	Limit  int
	Skip   int
}

// ToFloat converts the numeric encodings produced by the stores into float64.
func ToFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ToTime converts a stored date, either native or an RFC 3339 string, into a UTC time.
func ToTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.UTC(), true
	}
	return time.Time{}, false
}
