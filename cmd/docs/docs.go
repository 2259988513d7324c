// Package docs registers the swagger spec served by gin-swagger outside
// production. It is maintained by hand and covers the account lookup and
// journal preview routes; `swag init -g cmd/ledger_backend/main.go -o cmd/docs`
// regenerates the full spec from the handler annotations.
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
        "/tenants/{tenantID}/accounts/{code}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get an account by code",
                "parameters": [
                    {"type": "string", "description": "Tenant ID", "name": "tenantID", "in": "path", "required": true},
                    {"type": "string", "description": "Account code", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "404": {"description": "Account not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tenants/{tenantID}/maintenance/replay": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["maintenance"],
                "summary": "Replay a tenant's balances",
                "parameters": [
                    {"type": "string", "description": "Tenant ID", "name": "tenantID", "in": "path", "required": true},
                    {"description": "Opening balances", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/dto.ReplayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ReplaySummary"}},
                    "429": {"description": "Too many requests", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.AccountResponse": {"type": "object", "properties": {"code": {"type": "string"}, "accountName": {"type": "string"}, "type": {"type": "string"}, "displayAs": {"type": "string"}, "isActive": {"type": "boolean"}}},
        "dto.ReplayRequest": {"type": "object", "properties": {"openingCash": {"type": "number"}, "openingBank": {"type": "number"}, "useLatestSnapshot": {"type": "boolean"}}},
        "domain.ReplaySummary": {"type": "object", "properties": {"runID": {"type": "string"}, "strategy": {"type": "string"}, "updatedCount": {"type": "integer"}, "auditCount": {"type": "integer"}, "finalCashBalance": {"type": "number"}, "finalBankBalance": {"type": "number"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	Schemes:          []string{},
	Title:            "Nonprofit Ledger API",
	Description:      "Chart of accounts, journal previews and balance maintenance for nonprofit ledgers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
