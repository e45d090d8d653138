// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["system"], "summary": "Health check",
                "responses": {"200": {"description": "OK"}}}
        },
        "/auth/sign-up": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Register an operator",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/auth/sign-in": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["auth"], "summary": "Obtain an operator token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/status": {
            "get": {"produces": ["application/json"], "tags": ["status"], "summary": "Get controller status",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Status"}}, "500": {"description": "Internal Server Error"}}}
        },
        "/api/v1/readings": {
            "get": {"produces": ["application/json"], "tags": ["history"], "summary": "List sensor readings",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"enum": ["TEMPERATURE", "WATER_LEVEL"], "type": "string", "name": "kind", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "count, readings"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}}
        },
        "/api/v1/readings/stats": {
            "get": {"produces": ["application/json"], "tags": ["history"], "summary": "Reading statistics",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"}
                ],
                "responses": {"200": {"description": "stats"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}}
        },
        "/api/v1/alerts": {
            "get": {"produces": ["application/json"], "tags": ["history"], "summary": "List alerts",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"enum": ["INFO", "WARNING", "CRITICAL"], "type": "string", "name": "level", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "count, alerts"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}}
        },
        "/api/v1/controls/target": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["controls"], "summary": "Set target temperature",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SetTargetRequest"}}],
                "responses": {"202": {"description": "Accepted"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "503": {"description": "Service Unavailable"}}}
        },
        "/api/v1/controls/feed": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["controls"], "summary": "Run the feeder",
                "parameters": [{"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handlers.FeedRequest"}}],
                "responses": {"202": {"description": "Accepted"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "503": {"description": "Service Unavailable"}}}
        },
        "/api/v1/controls/refill": {
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["controls"], "summary": "Start a manual refill",
                "parameters": [{"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handlers.RefillRequest"}}],
                "responses": {"202": {"description": "Accepted"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "handlers.authCredentials": {"type": "object", "required": ["password", "username"],
            "properties": {"password": {"type": "string", "example": "s3cret-pass"}, "username": {"type": "string", "example": "reef_keeper"}}},
        "handlers.SetTargetRequest": {"type": "object", "required": ["target"],
            "properties": {"target": {"type": "number", "example": 25}}},
        "handlers.FeedRequest": {"type": "object",
            "properties": {"seconds": {"type": "integer", "example": 3}}},
        "handlers.RefillRequest": {"type": "object",
            "properties": {"target": {"type": "number", "example": 100}}},
        "models.Status": {"type": "object",
            "properties": {
                "target_temperature_c": {"type": "number"},
                "pump_running": {"type": "boolean"},
                "mode": {"type": "string", "enum": ["AUTOMATIC", "MANUAL_REFILL"]},
                "manual_refill_target": {"type": "number"},
                "water_level_percent": {"type": "number"},
                "temperature_c": {"type": "number"},
                "updated_at": {"type": "string"}
            }}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Aquarium Controller API",
	Description:      "Status, history and operator controls for the aquarium control core.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
