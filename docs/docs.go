// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new customer account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Logout", "responses": {"204": {"description": "No Content"}}}},
        "/auth/session": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current session", "responses": {"200": {"description": "OK"}}}},
        "/public/content": {"get": {"tags": ["content"], "summary": "Published site content", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}},
        "/v1/sections": {"get": {"security": [{"BearerAuth": []}], "tags": ["sections"], "summary": "Navigation sections for the caller", "responses": {"200": {"description": "OK"}}}},
        "/v1/users": {"post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Provision a user", "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}},
        "/v1/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Dashboard overview", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}},
        "/v1/dashboard/animals": {"get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Animal counts", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}},
        "/v1/dashboard/inventory": {"get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Inventory with stock status", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}},
        "/v1/dashboard/health-reminders": {"get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Overdue and due-soon health records", "parameters": [{"type": "integer", "description": "Look-ahead in days", "name": "horizon", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/v1/dashboard/breeding": {"get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Breeding records with expected dates", "responses": {"200": {"description": "OK"}}}},
        "/v1/dashboard/finance": {"get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Income, expenses and net of completed transactions", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
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
	Title:            "Farm Manager API",
	Description:      "Farm management collections, role-gated sections and derived dashboard views.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
