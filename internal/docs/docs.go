// Package docs registers the swagger document of the dashboard API.
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
        "/health": {
            "get": {"tags": ["system"], "summary": "Health check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/filters": {
            "get": {"tags": ["dashboard"], "summary": "Filter options", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "502": {"description": "Dataset unavailable"}}}
        },
        "/dashboard": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Dashboard",
                "description": "A missing filter selects every value; an empty one selects nothing.",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "integer"}, "collectionFormat": "multi", "name": "year", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "country", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "age_group", "in": "query"},
                    {"type": "integer", "minimum": 0, "maximum": 1000, "name": "head", "in": "query"},
                    {"type": "integer", "minimum": 1, "maximum": 500, "name": "bins", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid parameter"}, "502": {"description": "Dataset unavailable"}}
            }
        },
        "/trend": {
            "get": {"tags": ["dashboard"], "summary": "Adoption trend", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "502": {"description": "Dataset unavailable"}}}
        },
        "/counts/{column}": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Category counts",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "column", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown column"}, "502": {"description": "Dataset unavailable"}}
            }
        },
        "/correlation": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Correlation matrix",
                "produces": ["application/json"],
                "parameters": [{"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "column", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown column"}, "502": {"description": "Dataset unavailable"}}
            }
        },
        "/charts/{name}.png": {
            "get": {
                "tags": ["charts"],
                "summary": "Chart image",
                "produces": ["image/png"],
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"type": "integer", "minimum": 1, "maximum": 4096, "name": "width", "in": "query"},
                    {"type": "integer", "minimum": 1, "maximum": 4096, "name": "height", "in": "query"}
                ],
                "responses": {"200": {"description": "PNG image"}, "204": {"description": "No data"}, "400": {"description": "Invalid parameter"}, "404": {"description": "Unknown chart"}, "415": {"description": "Chart cannot be rendered"}}
            }
        },
        "/exports": {
            "post": {
                "tags": ["exports"],
                "summary": "Export filtered view",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "format", "in": "query", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid format or parameter"}, "502": {"description": "Dataset unavailable"}}
            }
        },
        "/exports/{id}/{filename}": {
            "get": {
                "tags": ["exports"],
                "summary": "Download export",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "filename", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "File download"}, "404": {"description": "File not found"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "AI Tool Adoption EDA API",
	Description:      "Filters, aggregates and charts of the AI tool adoption dataset.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
