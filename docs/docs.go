// Package docs holds the swagger spec served at /swagger.
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
        "/auth/user": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            },
            "patch": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update current user",
                "parameters": [
                    {"description": "Profile fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ProfileUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/uploads": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "List uploads",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/upload.UploadResponse"}}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "description": "Accepts up to 10 PDF or image files; analysis runs in the background",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Upload statements",
                "parameters": [
                    {"type": "file", "description": "Statement files", "name": "files", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/upload.BatchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/recurring-payments": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "List recurring payments",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/payment.RecurringPayment"}}}
                }
            }
        },
        "/recurring-payments/{id}/status": {
            "patch": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Update payment status",
                "parameters": [
                    {"type": "string", "description": "Payment ID", "name": "id", "in": "path", "required": true},
                    {"description": "active, cancelled or paused", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/payment.StatusUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/payment.RecurringPayment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/reminders": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "Get reminder settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reminder.Reminder"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "Save reminder settings",
                "parameters": [
                    {"description": "Reminder settings", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ReminderSettings"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reminder.Reminder"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/reminders/send": {
            "post": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "Send reminder now",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/reminder.History"}}
                }
            }
        },
        "/reminder-history": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "List reminder history",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/reminder.History"}}}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Stats"}}
                }
            }
        },
        "/dashboard/categories": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Spend by category",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CategorySpend"}}}
                }
            }
        }
    },
    "definitions": {
        "common.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {}
            }
        },
        "dto.ProfileUpdate": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string", "maxLength": 100},
                "lastName": {"type": "string", "maxLength": 100},
                "profileImageUrl": {"type": "string"}
            }
        },
        "dto.ReminderSettings": {
            "type": "object",
            "required": ["frequency", "isActive", "sendTime"],
            "properties": {
                "frequency": {"type": "string", "enum": ["monthly", "weekly", "bi-weekly", "quarterly"]},
                "sendTime": {"type": "string", "enum": ["first_day", "last_day", "15th"]},
                "isActive": {"type": "boolean"}
            }
        },
        "dto.Stats": {
            "type": "object",
            "properties": {
                "totalSubscriptions": {"type": "integer"},
                "monthlyCost": {"type": "string"},
                "yearlyCost": {"type": "string"},
                "potentialSavings": {"type": "string"}
            }
        },
        "dto.CategorySpend": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "amount": {"type": "string"},
                "percentage": {"type": "string"}
            }
        },
        "payment.StatusUpdate": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["active", "cancelled", "paused"]}
            }
        },
        "payment.RecurringPayment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "merchantName": {"type": "string"},
                "amount": {"type": "string"},
                "frequency": {"type": "string", "enum": ["monthly", "yearly", "weekly", "bi-weekly"]},
                "category": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "cancelled", "paused"]},
                "confidence": {"type": "number"},
                "detectedDate": {"type": "string"},
                "lastPaymentDate": {"type": "string"},
                "nextPaymentDate": {"type": "string"},
                "uploadId": {"type": "string"}
            }
        },
        "reminder.Reminder": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "frequency": {"type": "string"},
                "sendTime": {"type": "string"},
                "isActive": {"type": "boolean"},
                "lastSent": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "reminder.History": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "sentDate": {"type": "string"},
                "status": {"type": "string", "enum": ["delivered", "failed", "bounced"]},
                "subscriptionCount": {"type": "integer"},
                "totalAmount": {"type": "string"},
                "recipientEmail": {"type": "string"}
            }
        },
        "upload.BatchResponse": {
            "type": "object",
            "properties": {
                "uploads": {"type": "array", "items": {"$ref": "#/definitions/upload.UploadResponse"}},
                "message": {"type": "string"}
            }
        },
        "upload.UploadResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "fileName": {"type": "string"},
                "fileType": {"type": "string"},
                "fileSize": {"type": "integer"},
                "uploadDate": {"type": "string"},
                "analysisStatus": {"type": "string", "enum": ["pending", "processing", "completed", "failed"]},
                "analysisResults": {"type": "object"}
            }
        },
        "user.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "profileImageUrl": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Subscription Tracker API",
	Description:      "Upload bank statements, track detected subscriptions and manage reminders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
