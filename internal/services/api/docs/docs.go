// Package docs holds the OpenAPI document served at /api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/ping": {
            "get": {
                "tags": ["Biometrics"],
                "summary": "Liveness probe with server time",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PingResponse"}}}}}
            }
        },
        "/device/open": {
            "post": {
                "tags": ["Device"],
                "summary": "Open the sensor session, idempotent",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Ack"}}}}}
            }
        },
        "/device/close": {
            "post": {
                "tags": ["Device"],
                "summary": "Close the sensor session, idempotent",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Ack"}}}}}
            }
        },
        "/enroll": {
            "post": {
                "tags": ["Biometrics"],
                "summary": "Capture three samples of one finger and return the fused template",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/EnrollResponse"}}}}}
            }
        },
        "/verify": {
            "post": {
                "tags": ["Biometrics"],
                "summary": "Compare a live capture with a stored template",
                "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/VerifyRequest"}}}},
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/MatchResponse"}}}}}
            }
        },
        "/identify": {
            "post": {
                "tags": ["Biometrics"],
                "summary": "Find the best candidate for a live capture",
                "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/IdentifyRequest"}}}},
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/MatchResponse"}}}}}
            }
        },
        "/debug/selftest": {
            "get": {
                "tags": ["Diagnostics"],
                "summary": "Capture twice and score the pair",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SelfTestResponse"}}}}}
            }
        },
        "/debug/info": {
            "get": {
                "tags": ["Diagnostics"],
                "summary": "Session readiness and image geometry",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/InfoResponse"}}}}}
            }
        },
        "/meta/version": {
            "get": {
                "tags": ["Meta"],
                "summary": "Build and version info",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/VersionResponse"}}}}}
            }
        },
        "/meta/ready": {
            "get": {
                "tags": ["Meta"],
                "summary": "Audit store readiness",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ReadyResponse"}}}}}
            }
        }
    },
    "components": {
        "schemas": {
            "Ack": {"type": "object", "properties": {"ok": {"type": "boolean", "example": true}}},
            "PingResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}, "ts": {"type": "string", "example": "2026-10-15T09:30:00.123456789Z"}}},
            "EnrollResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}, "template": {"type": "string", "format": "byte"}}},
            "VerifyRequest": {"type": "object", "properties": {"template": {"type": "string", "format": "byte"}}},
            "IdentifyEntry": {"type": "object", "properties": {"id": {"type": "integer", "format": "int64", "minimum": 0, "maximum": 4294967295}, "templateBase64": {"type": "string", "format": "byte"}}},
            "IdentifyRequest": {"type": "object", "properties": {"entries": {"type": "array", "items": {"$ref": "#/components/schemas/IdentifyEntry"}}}},
            "MatchResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}, "match": {"type": "boolean"}, "score": {"type": "integer", "minimum": 0}, "id": {"type": "integer", "format": "int64"}}},
            "SelfTestResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}, "charA_bytes": {"type": "integer"}, "charB_bytes": {"type": "integer"}, "match_score_A_vs_B": {"type": "integer"}}},
            "InfoResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}, "ready": {"type": "boolean"}, "imgW": {"type": "integer"}, "imgH": {"type": "integer"}}},
            "VersionResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}, "service": {"type": "string"}, "version": {"type": "string"}, "commit": {"type": "string"}, "date": {"type": "string"}}},
            "ReadyCheck": {"type": "object", "properties": {"name": {"type": "string"}, "status": {"type": "string", "enum": ["ok", "fail", "skipped"]}, "error": {"type": "string"}}},
            "ReadyResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}, "status": {"type": "string"}, "checks": {"type": "array", "items": {"$ref": "#/components/schemas/ReadyCheck"}}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "fingerprintd API",
	Description:      "Enrollment, verification and identification against one fingerprint sensor",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
