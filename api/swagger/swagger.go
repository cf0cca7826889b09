package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "College ERP API",
        "description": "Read access to the college ERP collections plus dashboard, exports and guarded writes",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Data", "description": "Collection catalogue and paginated reads"},
        {"name": "Dashboard", "description": "Aggregated counts"},
        {"name": "Students", "description": "Student records"},
        {"name": "Faculty", "description": "Faculty members"},
        {"name": "Courses", "description": "Course catalogue"},
        {"name": "Attendance", "description": "Monthly attendance sheets"},
        {"name": "Leave Requests", "description": "Student leave applications"},
        {"name": "Timetables", "description": "Weekday schedules"}
    ],
    "paths": {
        "/collections": {
            "get": {
                "tags": ["Data"],
                "summary": "List browsable collections",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CollectionsEnvelope"}},
                    "500": {"description": "Store unreachable", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/data/{collection}": {
            "get": {
                "tags": ["Data"],
                "summary": "Read one page of a collection",
                "parameters": [
                    {"name": "collection", "in": "path", "required": true, "type": "string", "enum": ["students", "faculties", "courses", "attendances", "leaverequests", "timetables"]},
                    {"name": "limit", "in": "query", "type": "integer", "default": 100},
                    {"name": "skip", "in": "query", "type": "integer", "default": 0}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PageEnvelope"}},
                    "404": {"description": "Unknown collection", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/data/{collection}/export": {
            "get": {
                "tags": ["Data"],
                "summary": "Export one page of a collection",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "collection", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "skip", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Unknown collection", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Roll already used", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/students/search": {
            "get": {
                "tags": ["Students"],
                "summary": "Search students",
                "parameters": [
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "email", "in": "query", "type": "string"},
                    {"name": "minRoll", "in": "query", "type": "integer"},
                    {"name": "maxRoll", "in": "query", "type": "integer"},
                    {"name": "isActive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Deactivate student",
                "description": "Sets isActive to false; the document is kept.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deactivated"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/students/{id}/status": {
            "patch": {
                "tags": ["Students"],
                "summary": "Activate or deactivate student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetActiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculties": {
            "post": {
                "tags": ["Faculty"],
                "summary": "Create faculty member",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FacultyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Employee id or email already used", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/faculties/{id}": {
            "put": {
                "tags": ["Faculty"],
                "summary": "Update faculty member",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FacultyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Faculty"],
                "summary": "Deactivate faculty member",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deactivated"}
                }
            }
        },
        "/faculties/{id}/status": {
            "patch": {
                "tags": ["Faculty"],
                "summary": "Activate or deactivate faculty member",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetActiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown faculty in charge", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Code already used", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "put": {
                "tags": ["Courses"],
                "summary": "Update course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Deactivate course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deactivated"}
                }
            }
        },
        "/courses/{id}/status": {
            "patch": {
                "tags": ["Courses"],
                "summary": "Activate or deactivate course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetActiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance sheets of a student",
                "parameters": [
                    {"name": "studentRoll", "in": "query", "required": true, "type": "integer"},
                    {"name": "month", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record a monthly attendance sheet",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordAttendanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown student roll", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/attendance/stats": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance statistics",
                "parameters": [
                    {"name": "studentRoll", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/leaverequests": {
            "get": {
                "tags": ["Leave Requests"],
                "summary": "List leave requests",
                "parameters": [
                    {"name": "studentRoll", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "approved", "rejected"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Leave Requests"],
                "summary": "File a leave request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLeaveRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "End date before start date", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/leaverequests/{id}/decision": {
            "patch": {
                "tags": ["Leave Requests"],
                "summary": "Approve or reject a pending leave request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecideLeaveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Already decided", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/timetables": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Create a weekday timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTimetableRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/day": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Active timetable of one weekday",
                "parameters": [
                    {"name": "dayOfWeek", "in": "query", "required": true, "type": "string"},
                    {"name": "semester", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No timetable", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/timetables/weekly": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Active timetables of a semester keyed by weekday",
                "parameters": [
                    {"name": "semester", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Institution overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/low-attendance": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Attendance sheets under a threshold",
                "parameters": [
                    {"name": "threshold", "in": "query", "type": "number"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/faculty-workload": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Active courses per faculty member",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/course-enrollment": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Active course catalogue",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/leave-trends": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Leave requests per start month",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/timetable-conflicts": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Double-booked rooms and faculty",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CollectionDescriptor": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "displayName": {"type": "string"},
                "description": {"type": "string"},
                "icon": {"type": "string"}
            }
        },
        "CollectionsEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "collections": {"type": "array", "items": {"$ref": "#/definitions/CollectionDescriptor"}}
            }
        },
        "PageEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"type": "object"}},
                "count": {"type": "integer"},
                "limit": {"type": "integer"},
                "skip": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "meta": {"type": "object"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "SetActiveRequest": {
            "type": "object",
            "properties": {
                "isActive": {"type": "boolean"}
            },
            "required": ["isActive"]
        },
        "StudentRequest": {
            "type": "object",
            "properties": {
                "roll": {"type": "integer"},
                "fullName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "isActive": {"type": "boolean"}
            },
            "required": ["roll", "fullName", "email"]
        },
        "FacultyRequest": {
            "type": "object",
            "properties": {
                "employeeId": {"type": "string"},
                "fullName": {"type": "string"},
                "email": {"type": "string"},
                "designation": {"type": "string"},
                "subjectsHandled": {"type": "array", "items": {"type": "string"}},
                "isActive": {"type": "boolean"}
            },
            "required": ["employeeId", "fullName", "email", "designation"]
        },
        "CourseRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "title": {"type": "string"},
                "credits": {"type": "integer"},
                "semester": {"type": "integer"},
                "description": {"type": "string"},
                "facultyInCharge": {"type": "string"},
                "isActive": {"type": "boolean"}
            },
            "required": ["code", "title", "semester"]
        },
        "AttendanceEntry": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["P", "A", "DNM"]}
            },
            "required": ["date", "status"]
        },
        "RecordAttendanceRequest": {
            "type": "object",
            "properties": {
                "studentRoll": {"type": "integer"},
                "month": {"type": "string"},
                "year": {"type": "integer"},
                "attendance": {"type": "array", "items": {"$ref": "#/definitions/AttendanceEntry"}}
            },
            "required": ["studentRoll", "month", "year", "attendance"]
        },
        "CreateLeaveRequest": {
            "type": "object",
            "properties": {
                "studentRoll": {"type": "integer"},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"},
                "reason": {"type": "string"},
                "comments": {"type": "string"}
            },
            "required": ["studentRoll", "startDate", "endDate", "reason"]
        },
        "DecideLeaveRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["approved", "rejected"]},
                "handledBy": {"type": "string"},
                "comments": {"type": "string"}
            },
            "required": ["status", "handledBy"]
        },
        "TimeSlot": {
            "type": "object",
            "properties": {
                "period": {"type": "integer"},
                "type": {"type": "string", "enum": ["lecture", "lab", "tutorial", "break"]},
                "courseCode": {"type": "string"},
                "course": {"type": "string"},
                "faculty": {"type": "string"},
                "room": {"type": "string"}
            },
            "required": ["period", "type"]
        },
        "CreateTimetableRequest": {
            "type": "object",
            "properties": {
                "dayOfWeek": {"type": "string"},
                "semester": {"type": "integer"},
                "slots": {"type": "array", "items": {"$ref": "#/definitions/TimeSlot"}}
            },
            "required": ["dayOfWeek", "semester", "slots"]
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
