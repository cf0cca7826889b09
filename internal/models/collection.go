package models

// Collection names as exposed on the wire and used by the stores.
const (
	CollectionStudents      = "students"
	CollectionFaculties     = "faculties"
	CollectionCourses       = "courses"
	CollectionAttendances   = "attendances"
	CollectionLeaveRequests = "leaverequests"
	CollectionTimetables    = "timetables"
)

// CollectionNames lists every collection in registry order.
var CollectionNames = []string{
	CollectionStudents,
	CollectionFaculties,
	CollectionCourses,
	CollectionAttendances,
	CollectionLeaveRequests,
	CollectionTimetables,
}

// IsCollection reports whether name is one of the known collections. Matching is case-sensitive.
func IsCollection(name string) bool {
	for _, known := range CollectionNames {
		if known == name {
			return true
		}
	}
	return false
}

// CollectionDescriptor is the discovery entry shown to clients.
type CollectionDescriptor struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ReferenceField names a dotted field path holding ids of documents in Target.
// Path segments may cross arrays, e.g. "slots.course".
type ReferenceField struct {
	Path   string
	Target string
}

// CollectionPage is one window of formatted records with the unfiltered total.
type CollectionPage struct {
	Records    []Document `json:"records"`
	TotalCount int64      `json:"totalCount"`
	Limit      int        `json:"limit"`
	Skip       int        `json:"skip"`
}
