// Package docs holds the Swagger 2.0 document served under /swagger.
//
// The template follows the swag output layout and must stay in step with the
// @-annotations on the handlers in internal/api; docs_test.go checks both
// against each other. Run go generate ./docs to rebuild it with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "https://github.com/guttosm/stockstats",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/guttosm/stockstats",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/stats": {
            "get": {
                "description": "Returns the daily price bar of a ticker together with social messages classified by sentiment",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "stats"
                ],
                "summary": "Get stock statistics",
                "parameters": [
                    {
                        "type": "string",
                        "example": "XYZ",
                        "description": "Stock ticker",
                        "name": "ticker",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "example": "2012-11-01",
                        "description": "As-of date in YYYY-MM-DD",
                        "name": "date",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Success",
                        "schema": {
                            "$ref": "#/definitions/dto.StockStatsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Always returns OK if the service is running",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Returns ready if the service dependencies (DB) are reachable",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error_details": {
                    "type": "string",
                    "example": "parsing time \"2012-11-xx\""
                },
                "message": {
                    "type": "string",
                    "example": "invalid date format, expected YYYY-MM-DD"
                },
                "timestamp": {
                    "type": "string",
                    "example": "2012-11-01T15:04:05Z"
                }
            }
        },
        "dto.SocialStatsResponse": {
            "type": "object",
            "properties": {
                "messages": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Message"
                    }
                },
                "negative": {
                    "type": "integer",
                    "example": 1
                },
                "neutral": {
                    "type": "integer",
                    "example": 1
                },
                "positive": {
                    "type": "integer",
                    "example": 1
                }
            }
        },
        "dto.StockStatsResponse": {
            "type": "object",
            "properties": {
                "closing_date": {
                    "type": "string",
                    "example": "2012-11-01"
                },
                "financial_stats": {
                    "$ref": "#/definitions/models.FinancialStats"
                },
                "social_stats": {
                    "$ref": "#/definitions/dto.SocialStatsResponse"
                },
                "ticker": {
                    "type": "string",
                    "example": "XYZ"
                }
            }
        },
        "models.FinancialStats": {
            "type": "object",
            "properties": {
                "close": {
                    "type": "number",
                    "example": 60.51
                },
                "high": {
                    "type": "number",
                    "example": 60.74
                },
                "low": {
                    "type": "number",
                    "example": 58.12
                },
                "open": {
                    "type": "number",
                    "example": 58.23
                },
                "volume": {
                    "type": "integer",
                    "example": 12345678
                }
            }
        },
        "models.Message": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "example": "1"
                },
                "sentiment": {
                    "allOf": [
                        {
                            "$ref": "#/definitions/models.Sentiment"
                        }
                    ],
                    "example": "POSITIVE"
                },
                "text": {
                    "type": "string",
                    "example": "Love it."
                }
            }
        },
        "models.Sentiment": {
            "type": "string",
            "enum": [
                "POSITIVE",
                "NEGATIVE",
                "NEUTRAL"
            ],
            "x-enum-varnames": [
                "SentimentPositive",
                "SentimentNegative",
                "SentimentNeutral"
            ]
        }
    },
    "tags": [
        {
            "description": "Stock statistics for a ticker and date",
            "name": "stats"
        },
        {
            "description": "Liveness and readiness checks",
            "name": "health"
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "stockstats API",
	Description:      "Daily price bars merged with sentiment-classified social messages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
