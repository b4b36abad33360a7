// Package docs registers the OpenAPI 2.0 document served by gin-swagger at
// /swagger/index.html. Keep it in sync with the godoc annotations on the
// handlers (swag init -g cmd/server/main.go -o docs regenerates it).
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
        "/lists": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "List all lists",
                "operationId": "getAllLists",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.List"}}},
                    "500": {"description": "Database failure (pool errors carry the cause)", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Inserts a list with a server-assigned id and echoes its name.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "Create a list",
                "operationId": "createList",
                "parameters": [
                    {"description": "List name", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.NameRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CreateListResponse"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Database failure", "schema": {"type": "string"}}
                }
            }
        },
        "/lists/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lists"],
                "summary": "Get a list",
                "operationId": "getList",
                "parameters": [
                    {"type": "integer", "example": 101, "description": "List ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.List"}},
                    "404": {"description": "List not found (empty body)", "schema": {"type": "string"}},
                    "500": {"description": "Database failure", "schema": {"type": "string"}}
                }
            }
        },
        "/list/{id}": {
            "get": {
                "description": "Returns live items first, then removed items marked deleted.",
                "produces": ["application/json"],
                "tags": ["Items"],
                "summary": "List the items of a list",
                "operationId": "getListItems",
                "parameters": [
                    {"type": "integer", "example": 101, "description": "List ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ListItem"}}},
                    "500": {"description": "Database failure", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Items"],
                "summary": "Add an item to a list",
                "operationId": "addItem",
                "parameters": [
                    {"type": "integer", "example": 101, "description": "List ID", "name": "id", "in": "path", "required": true},
                    {"description": "Item name", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.NameRequest"}}
                ],
                "responses": {
                    "200": {"description": "Empty JSON string", "schema": {"type": "string"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Database failure (including unknown list)", "schema": {"type": "string"}}
                }
            }
        },
        "/list/{id}/{itemId}": {
            "delete": {
                "description": "Marks the item deleted. Removing an unknown item succeeds.",
                "produces": ["application/json"],
                "tags": ["Items"],
                "summary": "Remove an item from a list",
                "operationId": "removeItem",
                "parameters": [
                    {"type": "integer", "example": 101, "description": "List ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "example": 101, "description": "Item ID", "name": "itemId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Empty JSON string", "schema": {"type": "string"}},
                    "500": {"description": "Database failure", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "domain.List": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 101},
                "name": {"type": "string", "example": "groceries"},
                "deleted": {"type": "boolean", "example": false}
            }
        },
        "domain.ListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 101},
                "name": {"type": "string", "example": "milk"},
                "list_id": {"type": "integer", "example": 101},
                "deleted": {"type": "boolean", "example": false}
            }
        },
        "handlers.NameRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "groceries"}
            }
        },
        "handlers.CreateListResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "groceries"},
                "foo": {"type": "string", "example": ""}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"},
                "code": {"type": "string", "example": "bad_request"},
                "message": {"type": "string", "example": "invalid JSON body"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Lists API",
	Description:      "Named lists and their items, backed by a pooled SQL database.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
