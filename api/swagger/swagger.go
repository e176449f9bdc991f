package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Plan API",
        "description": "Schedule planning service over the archived course catalog",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Archived terms and course sections"},
        {"name": "Planner", "description": "Schedule generation and conflict checks"}
    ],
    "paths": {
        "/terms": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List archive terms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List catalog sections",
                "parameters": [
                    {"name": "termId", "in": "query", "type": "string", "required": true},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "searchField", "in": "query", "type": "string", "enum": ["code", "title", "instructor", "crn"]},
                    {"name": "code", "in": "query", "type": "string"},
                    {"name": "level", "in": "query", "type": "string"},
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"},
                    {"name": "sortBy", "in": "query", "type": "string"},
                    {"name": "sortOrder", "in": "query", "type": "string", "enum": ["asc", "desc"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/sections": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List candidate sections for the named course codes",
                "parameters": [
                    {"name": "termId", "in": "query", "type": "string", "required": true},
                    {"name": "codes", "in": "query", "type": "string", "required": true, "description": "Comma-separated course codes"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/levels": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List distinct levels of a term",
                "parameters": [
                    {"name": "termId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List distinct subject prefixes of a term",
                "parameters": [
                    {"name": "termId", "in": "query", "type": "string", "required": true},
                    {"name": "level", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/generate": {
            "post": {
                "tags": ["Planner"],
                "summary": "Generate ranked conflict-free schedules",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GeneratePlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Term not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/conflicts": {
            "post": {
                "tags": ["Planner"],
                "summary": "Check pairwise conflicts among sections",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConflictCheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/export": {
            "get": {
                "tags": ["Planner"],
                "summary": "Export a plan as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "termId", "in": "query", "type": "string", "required": true},
                    {"name": "crns", "in": "query", "type": "string", "required": true, "description": "Comma-separated section CRNs"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "GeneratePlanRequest": {
            "type": "object",
            "properties": {
                "termId": {"type": "string"},
                "mustCodes": {"type": "array", "items": {"type": "string"}},
                "selectiveGroups": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SelectiveGroupRequest"}
                },
                "constraints": {"$ref": "#/definitions/PlanConstraints"}
            },
            "required": ["termId"]
        },
        "SelectiveGroupRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "required": {"type": "integer"},
                "codes": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["required", "codes"]
        },
        "PlanConstraints": {
            "type": "object",
            "properties": {
                "freeDays": {"type": "array", "items": {"type": "string"}},
                "noMorning": {"type": "boolean"}
            }
        },
        "ConflictCheckRequest": {
            "type": "object",
            "properties": {
                "termId": {"type": "string"},
                "crns": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["termId", "crns"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
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
