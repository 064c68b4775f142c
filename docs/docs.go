// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/finance-tracker/main.go` after changing handler annotations.
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
        "/": {
            "get": {
                "tags": ["web"],
                "summary": "Account dashboard",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DashboardResponse"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["web"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Unhealthy"}}
            }
        },
        "/transactions/add": {
            "post": {
                "tags": ["web"],
                "summary": "Add a transaction",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"type": "string", "name": "type", "in": "formData", "required": true},
                    {"type": "string", "name": "amount", "in": "formData", "required": true},
                    {"type": "string", "name": "description", "in": "formData"}
                ],
                "responses": {"302": {"description": "Found"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/account/setup": {
            "get": {"tags": ["web"], "summary": "Account setup", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SetupResponse"}}}},
            "post": {
                "tags": ["web"],
                "summary": "Account setup",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"type": "string", "name": "balance", "in": "formData", "required": true},
                    {"type": "string", "name": "start_month", "in": "formData"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SetupResponse"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/calculator": {
            "post": {
                "tags": ["web"],
                "summary": "Savings calculator",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CalculatorRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RecommendationResponse"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/goals/add": {
            "post": {"tags": ["web"], "summary": "Add a savings goal", "responses": {"302": {"description": "Found"}, "400": {"description": "Bad Request"}}}
        },
        "/goals/{id}/update": {
            "post": {
                "tags": ["web"],
                "summary": "Update savings goal progress",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"302": {"description": "Found"}, "404": {"description": "Not Found"}}
            }
        },
        "/user/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}, "409": {"description": "Conflict"}}
            }
        },
        "/user/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/user/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh access token",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RefreshTokenRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/accounts": {
            "get": {"security": [{"Bearer": []}], "tags": ["accounts"], "summary": "List accounts", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["accounts"], "summary": "Create an account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/accounts/{id}/fields": {
            "patch": {
                "security": [{"Bearer": []}],
                "tags": ["accounts"],
                "summary": "Update one account field",
                "description": "Allowed fields: balance, monthly_income, monthly_expense, start_month",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateFieldRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/accounts/{id}/transactions": {
            "get": {"security": [{"Bearer": []}], "tags": ["transactions"], "summary": "List transactions of an account", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["transactions"], "summary": "Add a transaction", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/transactions/{id}": {
            "delete": {"security": [{"Bearer": []}], "tags": ["transactions"], "summary": "Delete a transaction", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/recurring/run": {
            "post": {"security": [{"Bearer": []}], "tags": ["recurring"], "summary": "Post due recurring transactions", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "dto.CalculatorRequest": {
            "type": "object",
            "properties": {"monthly_income": {"type": "string"}, "current_savings": {"type": "string"}}
        },
        "dto.RecommendationResponse": {
            "type": "object",
            "properties": {
                "recommended_percentage": {"type": "number"},
                "recommended_amount": {"type": "string"},
                "monthly_income": {"type": "string"},
                "current_savings": {"type": "string"}
            }
        },
        "dto.DashboardResponse": {
            "type": "object",
            "properties": {
                "account": {"type": "object"},
                "recent_transactions": {"type": "array", "items": {"type": "object"}},
                "goals": {"type": "array", "items": {"type": "object"}},
                "recommendation": {"$ref": "#/definitions/dto.RecommendationResponse"}
            }
        },
        "dto.SetupResponse": {
            "type": "object",
            "properties": {"account": {"type": "object"}, "message": {"type": "string"}, "error": {"type": "string"}}
        },
        "dto.UpdateFieldRequest": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "value": {"type": "string"}}
        },
        "dto.RegisterRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "first_name": {"type": "string"}, "last_name": {"type": "string"}}
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.RefreshTokenRequest": {
            "type": "object",
            "properties": {"refresh_token": {"type": "string"}}
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Finance Tracker API",
	Description:      "Personal finance tracker: ledger, savings goals and savings recommendations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
