// Package docs registers the CourseHub swagger spec. Regenerate with `swag init -g cmd/api/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["subjects"],
                "summary": "List subjects",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["subjects"],
                "summary": "Create subject",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.SubjectRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "409": {"description": "Code already exists", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/subjects/{id}": {
            "get": {
                "tags": ["subjects"],
                "summary": "Get subject",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["subjects"],
                "summary": "Update subject",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.SubjectRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["subjects"],
                "summary": "Delete subject",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "409": {"description": "Subject still has content", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/resources": {
            "get": {
                "tags": ["resources"],
                "summary": "List resources",
                "parameters": [
                    {"type": "integer", "name": "subject_id", "in": "query"},
                    {"enum": ["lecture", "sheet", "assignment", "exam", "reference", "important_question"], "type": "string", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["resources"],
                "summary": "Create resource",
                "parameters": [
                    {"type": "integer", "name": "subject_id", "in": "formData", "required": true},
                    {"type": "string", "name": "type", "in": "formData", "required": true},
                    {"type": "string", "name": "title_ar", "in": "formData", "required": true},
                    {"type": "string", "name": "title_en", "in": "formData", "required": true},
                    {"type": "file", "name": "file", "in": "formData"}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/resources/latest": {
            "get": {
                "tags": ["resources"],
                "summary": "Latest resources",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/resources/order": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["resources"],
                "summary": "Reorder resources",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateResourceOrderRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/resources/{id}": {
            "get": {
                "tags": ["resources"],
                "summary": "Get resource",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["resources"],
                "summary": "Update resource",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["resources"],
                "summary": "Delete resource",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/resources/{id}/move": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["resources"],
                "summary": "Move resource",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.MoveResourceRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/questions": {
            "get": {
                "tags": ["questions"],
                "summary": "List questions",
                "parameters": [
                    {"type": "integer", "name": "subject_id", "in": "query"},
                    {"enum": ["easy", "medium", "hard"], "type": "string", "name": "difficulty", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["questions"],
                "summary": "Create question",
                "parameters": [
                    {"type": "string", "name": "question_text_ar", "in": "formData", "required": true},
                    {"type": "string", "name": "question_text_en", "in": "formData", "required": true},
                    {"type": "file", "name": "image", "in": "formData"},
                    {"type": "file", "name": "answer_image", "in": "formData"}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/questions/{id}": {
            "get": {
                "tags": ["questions"],
                "summary": "Get question",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["questions"],
                "summary": "Update question",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["questions"],
                "summary": "Delete question",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/announcements": {
            "get": {
                "tags": ["announcements"],
                "summary": "List announcements",
                "parameters": [
                    {"type": "boolean", "name": "active_only", "in": "query"},
                    {"enum": ["general", "exam", "submission"], "type": "string", "name": "type", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["announcements"],
                "summary": "Create announcement",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.AnnouncementRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/announcements/{id}": {
            "get": {
                "tags": ["announcements"],
                "summary": "Get announcement",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["announcements"],
                "summary": "Update announcement",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.AnnouncementRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["announcements"],
                "summary": "Delete announcement",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/announcements/{id}/reactions": {
            "get": {
                "tags": ["announcements"],
                "summary": "Get reactions",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "post": {
                "tags": ["announcements"],
                "summary": "React to announcement",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.ReactRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/statistics": {
            "get": {
                "tags": ["statistics"],
                "summary": "List subject statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/statistics/overall": {
            "get": {
                "tags": ["statistics"],
                "summary": "Overall statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.OverallStatistics"}}}
            }
        },
        "/statistics/sync": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["statistics"],
                "summary": "Synchronise statistics",
                "responses": {
                    "200": {"description": "Sync finished", "schema": {"$ref": "#/definitions/dto.SyncStatisticsResponse"}},
                    "409": {"description": "A sync is already running", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/statistics/subject/{id}": {
            "get": {
                "tags": ["statistics"],
                "summary": "Subject statistics",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["statistics"],
                "summary": "Override subject statistics",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateSubjectStatisticsRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.APIResponse"}}}
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Database health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "timestamp": {"type": "string"}
            }
        },
        "dto.OverallStatistics": {
            "type": "object",
            "properties": {
                "totalSubjects": {"type": "integer", "example": 7},
                "totalLectures": {"type": "integer", "example": 42},
                "totalAssignments": {"type": "integer"},
                "totalExams": {"type": "integer"},
                "totalSheets": {"type": "integer"},
                "totalReferences": {"type": "integer"},
                "totalImportantQuestions": {"type": "integer"},
                "totalQuestions": {"type": "integer"},
                "totalLabs": {"type": "integer"},
                "totalPracticals": {"type": "integer"},
                "totalTutorials": {"type": "integer"}
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VAL_001"},
                "message": {"type": "string"},
                "field": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string", "example": "admin1"},
                "password": {"type": "string"}
            }
        },
        "dto.SubjectRequest": {
            "type": "object",
            "required": ["name_ar", "name_en", "code"],
            "properties": {
                "name_ar": {"type": "string"},
                "name_en": {"type": "string", "example": "Calculus I"},
                "description_ar": {"type": "string"},
                "description_en": {"type": "string"},
                "code": {"type": "string", "example": "EGS11101"},
                "semester": {"type": "integer", "example": 1}
            }
        },
        "dto.ResourceOrderItem": {
            "type": "object",
            "required": ["id", "order_index"],
            "properties": {
                "id": {"type": "integer", "example": 10},
                "order_index": {"type": "integer", "example": 2}
            }
        },
        "dto.UpdateResourceOrderRequest": {
            "type": "object",
            "required": ["orders"],
            "properties": {
                "orders": {"type": "array", "items": {"$ref": "#/definitions/dto.ResourceOrderItem"}}
            }
        },
        "dto.MoveResourceRequest": {
            "type": "object",
            "required": ["direction"],
            "properties": {
                "direction": {"type": "string", "enum": ["up", "down"]}
            }
        },
        "dto.AnnouncementRequest": {
            "type": "object",
            "required": ["title_ar", "title_en", "content_ar", "content_en"],
            "properties": {
                "title_ar": {"type": "string"},
                "title_en": {"type": "string"},
                "content_ar": {"type": "string"},
                "content_en": {"type": "string"},
                "priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
                "type": {"type": "string", "enum": ["general", "exam", "submission"]},
                "is_active": {"type": "boolean"}
            }
        },
        "dto.ReactRequest": {
            "type": "object",
            "required": ["reaction_type"],
            "properties": {
                "reaction_type": {"type": "string", "enum": ["like", "love", "wow", "sad"]}
            }
        },
        "dto.UpdateSubjectStatisticsRequest": {
            "type": "object",
            "properties": {
                "total_lectures": {"type": "integer"},
                "total_assignments": {"type": "integer"},
                "total_exams": {"type": "integer"},
                "total_sheets": {"type": "integer"},
                "total_references": {"type": "integer"},
                "total_important_questions": {"type": "integer"},
                "total_questions": {"type": "integer"},
                "total_labs": {"type": "integer"},
                "total_practicals": {"type": "integer"},
                "total_tutorials": {"type": "integer"}
            }
        },
        "dto.SyncFailure": {
            "type": "object",
            "properties": {
                "subject_id": {"type": "integer"},
                "error": {"type": "string"}
            }
        },
        "dto.SyncStatisticsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "count": {"type": "integer", "example": 7},
                "processed": {"type": "integer", "example": 7},
                "failed": {"type": "array", "items": {"$ref": "#/definitions/dto.SyncFailure"}},
                "duration_ms": {"type": "integer"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.TableHealth": {
            "type": "object",
            "properties": {
                "table": {"type": "string"},
                "rows": {"type": "integer"},
                "error": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "tables": {"type": "array", "items": {"$ref": "#/definitions/dto.TableHealth"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authorization, as \"Bearer <token>\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "CourseHub API",
	Description:      "Course materials, question bank and notice board for the EEE first-semester cohort.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
