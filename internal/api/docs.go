// Package api serves the gateway's API description. docTemplate follows the
// layout swag init generates from the handler annotations.
package api

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
        "/api/v1/donations": {
            "post": {
                "description": "Records a PENDING donation and returns the processor's hosted payment page.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["donations"],
                "summary": "Start a donation",
                "parameters": [
                    {
                        "description": "Donor details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/rest.InitiateRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/rest.InitiateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ValidationErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}}
                }
            }
        },
        "/api/v1/donations/callback": {
            "post": {
                "description": "Receives the payment outcome from the processor, form-encoded or JSON. Redirects the donor to the result page when one is configured.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["donations"],
                "summary": "Processor callback",
                "parameters": [
                    {"type": "string", "description": "Order id sent at initiation", "name": "order_id", "in": "formData", "required": true},
                    {"type": "string", "description": "Processor status text or code", "name": "status", "in": "formData"},
                    {"type": "string", "description": "Amount the processor charged", "name": "amount", "in": "formData"},
                    {"type": "string", "description": "Processor transaction reference", "name": "bank_ref", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.CallbackResponse"}},
                    "303": {"description": "Redirect to the result page"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}}
                }
            }
        },
        "/api/v1/donations/{ref}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["donations"],
                "summary": "Donation status",
                "parameters": [
                    {"type": "string", "description": "Donation reference", "name": "ref", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.StatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}}
                }
            }
        },
        "/api/v1/donations/{ref}/verify": {
            "post": {
                "description": "Queries the processor and settles the donation if it is still PENDING.",
                "produces": ["application/json"],
                "tags": ["donations"],
                "summary": "Reconcile a donation with the processor",
                "parameters": [
                    {"type": "string", "description": "Donation reference", "name": "ref", "in": "path", "required": true},
                    {"type": "string", "description": "Admin key, required when configured", "name": "X-Admin-Key", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.VerifyResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness and database reachability",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/rest.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "rest.CallbackResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "donationRef": {"type": "string"},
                "replayed": {"type": "boolean"},
                "status": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "rest.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "donationRef": {"type": "string"},
                "error": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "rest.HealthResponse": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "rest.InitiateRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "string", "example": "500.00"},
                "email": {"type": "string", "example": "asha@example.org"},
                "message": {"type": "string", "example": "Keep it up"},
                "name": {"type": "string", "example": "Asha Rao"},
                "phone": {"type": "string", "example": "9876543210"}
            }
        },
        "rest.InitiateResponse": {
            "type": "object",
            "properties": {
                "donationRef": {"type": "string"},
                "orderId": {"type": "string"},
                "paymentUrl": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "rest.StatusResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "donationRef": {"type": "string"},
                "status": {"type": "string", "enum": ["PENDING", "SUCCESS", "FAILED"]},
                "transactionRef": {"type": "string"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "rest.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"type": "string"}},
                "success": {"type": "boolean"}
            }
        },
        "rest.VerifyResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "donationRef": {"type": "string"},
                "processorStatus": {"type": "object"},
                "status": {"type": "string", "enum": ["PENDING", "SUCCESS", "FAILED"]},
                "transactionRef": {"type": "string"},
                "updated": {"type": "boolean"},
                "updatedAt": {"type": "string", "format": "date-time"}
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
	Title:            "Donation Gateway API",
	Description:      "Donation intake backed by a hosted payment page processor.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
