// Package bank holds the generated OpenAPI document for the bank service.
// Regenerate with: swag init -g internal/bank/http/router.go -o api/bank
package bank

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        }
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT session token. Format: \"Bearer {token}\"."
        }
    },
    "paths": {
        "/api/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new account",
                "responses": {
                    "201": {"description": "Created account"},
                    "400": {"description": "Validation failure or duplicate email"},
                    "429": {"description": "Rate limited"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "responses": {
                    "200": {"description": "Session token and account"},
                    "400": {"description": "Invalid credentials"},
                    "429": {"description": "Rate limited"}
                }
            }
        },
        "/api/payments/transfer": {
            "post": {
                "tags": ["Payments"],
                "summary": "Transfer funds",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Recorded transfer"},
                    "400": {"description": "Validation or business failure"},
                    "401": {"description": "Missing or invalid token"},
                    "429": {"description": "Rate limited"}
                }
            }
        },
        "/api/payments/withdraw": {
            "post": {
                "tags": ["Payments"],
                "summary": "Withdraw funds",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Recorded withdrawal"},
                    "400": {"description": "Validation or business failure"},
                    "401": {"description": "Missing or invalid token"},
                    "429": {"description": "Rate limited"}
                }
            }
        },
        "/api/payments/deposit": {
            "post": {
                "tags": ["Payments"],
                "summary": "Deposit funds",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Recorded deposit"},
                    "400": {"description": "Validation or business failure"},
                    "401": {"description": "Missing or invalid token"},
                    "429": {"description": "Rate limited"}
                }
            }
        },
        "/api/payments/history": {
            "get": {
                "tags": ["Payments"],
                "summary": "Transaction history",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Ledger entries, newest first"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/api/me": {
            "get": {
                "tags": ["Profile"],
                "summary": "Current account",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Account"},
                    "401": {"description": "Missing or invalid token"}
                }
            },
            "patch": {
                "tags": ["Profile"],
                "summary": "Update profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated account"},
                    "400": {"description": "Validation failure or duplicate email"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/api/mfa/totp/enroll": {
            "post": {
                "tags": ["MFA"],
                "summary": "Enroll TOTP",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Pending secret"},
                    "400": {"description": "Already enabled"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/api/mfa/totp/activate": {
            "post": {
                "tags": ["MFA"],
                "summary": "Activate TOTP",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Factor active"},
                    "400": {"description": "Invalid code or not enrolled"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/api/mfa/totp": {
            "delete": {
                "tags": ["MFA"],
                "summary": "Disable TOTP",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Factor removed"},
                    "400": {"description": "Invalid code or not enrolled"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/api/employees/users": {
            "get": {
                "tags": ["Employees"],
                "summary": "List accounts",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "All accounts"},
                    "401": {"description": "Missing or invalid token"},
                    "403": {"description": "Caller is not an employee"}
                }
            },
            "post": {
                "tags": ["Employees"],
                "summary": "Create an account",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created account"},
                    "400": {"description": "Validation failure or duplicate email"},
                    "401": {"description": "Missing or invalid token"},
                    "403": {"description": "Caller is not an employee"}
                }
            }
        },
        "/api/employees/users/{id}": {
            "delete": {
                "tags": ["Employees"],
                "summary": "Remove an account",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Account removed"},
                    "401": {"description": "Missing or invalid token"},
                    "403": {"description": "Caller is not an employee"},
                    "404": {"description": "Unknown account"}
                }
            }
        },
        "/api/employees/users/{id}/freeze": {
            "patch": {
                "tags": ["Employees"],
                "summary": "Freeze or unfreeze an account",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated account"},
                    "400": {"description": "Validation failure"},
                    "401": {"description": "Missing or invalid token"},
                    "403": {"description": "Caller is not an employee"},
                    "404": {"description": "Unknown account"}
                }
            }
        },
        "/livez": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "status, uptime, version"}
                }
            }
        },
        "/readyz": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "ready"},
                    "503": {"description": "database unreachable"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "SecurePay Core API",
	Description:      "Transactional and security core for a small retail bank.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
