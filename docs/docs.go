// Package docs holds the OpenAPI document served under /swagger/. It mirrors
// the handler annotations; regenerate with `swag init -g cmd/api/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/compliment": {
            "get": {
                "description": "Returns an approved compliment from the store, recent submissions, or the bundled list",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "compliments"
                ],
                "summary": "Random compliment",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/respond.SuccessEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/compliment.RandomResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    }
                }
            },
            "post": {
                "description": "Stores a compliment. Submissions that trip the profanity filter are held for moderation",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "compliments"
                ],
                "summary": "Submit a compliment",
                "parameters": [
                    {
                        "description": "Compliment (message up to 500 characters, sender up to 50)",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/compliment.SubmitRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/respond.SuccessEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/compliment.SubmitResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid compliment or body",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/drink": {
            "get": {
                "description": "Fetches a cocktail from TheCocktailDB, falling back to bundled drinks",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "fun"
                ],
                "summary": "Random drink",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/respond.SuccessEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/entity.Drink"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/excuse": {
            "get": {
                "description": "Generates an excuse with the configured LLM, or serves a bundled one",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "fun"
                ],
                "summary": "Random excuse",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/respond.SuccessEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/entity.Excuse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/holiday": {
            "get": {
                "description": "Looks up an observance with Calendarific, falling back to the bundled holiday for the month and day",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "fun"
                ],
                "summary": "Holiday on a date",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Date (YYYY-MM-DD), defaults to today",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/respond.SuccessEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/entity.Holiday"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid date",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/joke": {
            "get": {
                "description": "Fetches a joke from JokeAPI, falling back to bundled jokes",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "fun"
                ],
                "summary": "Random joke",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/respond.SuccessEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/entity.Joke"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/quote": {
            "get": {
                "description": "Returns the quote pinned to the date. The first quote resolved for a date is kept for the whole day",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "fun"
                ],
                "summary": "Quote of the day",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Date (YYYY-MM-DD), defaults to today",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/respond.SuccessEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/entity.Quote"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid date",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/showerthought": {
            "get": {
                "description": "Picks a post from the shower thoughts feed, falling back to bundled thoughts",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "fun"
                ],
                "summary": "Random shower thought",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/respond.SuccessEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/entity.ShowerThought"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/spinner": {
            "post": {
                "description": "Picks one of 2 to 5 choices uniformly at random",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "fun"
                ],
                "summary": "Decision spinner",
                "parameters": [
                    {
                        "description": "Choices to spin",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/fun.SpinRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/respond.SuccessEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/entity.SpinResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid choices or body",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/timer": {
            "get": {
                "description": "Suggests something to do during a break",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "fun"
                ],
                "summary": "Break suggestion",
                "parameters": [
                    {
                        "enum": [
                            "short",
                            "long"
                        ],
                        "type": "string",
                        "description": "Break length",
                        "name": "type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/respond.SuccessEnvelope"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/entity.BreakSuggestion"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid break type",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "405": {
                        "description": "Method not allowed",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/respond.ErrorEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "entity.Excuse": {
            "type": "object",
            "properties": {
                "excuse": {
                    "type": "string"
                },
                "source": {
                    "type": "string",
                    "enum": [
                        "api",
                        "fallback"
                    ]
                }
            }
        },
        "entity.Joke": {
            "type": "object",
            "properties": {
                "joke": {
                    "type": "string"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "dad",
                        "oneliner"
                    ]
                },
                "source": {
                    "type": "string",
                    "enum": [
                        "api",
                        "fallback"
                    ]
                }
            }
        },
        "entity.Quote": {
            "type": "object",
            "properties": {
                "quote": {
                    "type": "string"
                },
                "author": {
                    "type": "string"
                },
                "date": {
                    "type": "string",
                    "example": "2026-03-14"
                },
                "source": {
                    "type": "string",
                    "enum": [
                        "api",
                        "fallback"
                    ]
                }
            }
        },
        "entity.ShowerThought": {
            "type": "object",
            "properties": {
                "thought": {
                    "type": "string"
                },
                "source": {
                    "type": "string",
                    "enum": [
                        "api",
                        "fallback"
                    ]
                }
            }
        },
        "entity.Holiday": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "date": {
                    "type": "string",
                    "example": "2026-03-14"
                },
                "source": {
                    "type": "string",
                    "enum": [
                        "api",
                        "fallback"
                    ]
                }
            }
        },
        "entity.Drink": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "ingredients": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "instructions": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "image": {
                    "type": "string"
                },
                "source": {
                    "type": "string",
                    "enum": [
                        "api",
                        "fallback"
                    ]
                }
            }
        },
        "entity.BreakSuggestion": {
            "type": "object",
            "properties": {
                "breakSuggestion": {
                    "type": "string"
                },
                "duration": {
                    "type": "integer",
                    "description": "minutes"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "short",
                        "long"
                    ]
                }
            }
        },
        "entity.SpinResult": {
            "type": "object",
            "properties": {
                "selectedChoice": {
                    "type": "string"
                },
                "selectedIndex": {
                    "type": "integer"
                },
                "spinDuration": {
                    "type": "integer",
                    "description": "milliseconds"
                },
                "rotations": {
                    "type": "integer"
                },
                "choices": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "fun.SpinRequest": {
            "type": "object",
            "properties": {
                "choices": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "minItems": 2,
                    "maxItems": 5
                }
            }
        },
        "compliment.SubmitRequest": {
            "type": "object",
            "required": [
                "message",
                "sender"
            ],
            "properties": {
                "message": {
                    "type": "string",
                    "maxLength": 500
                },
                "sender": {
                    "type": "string",
                    "maxLength": 50
                }
            }
        },
        "compliment.SubmitResult": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "complimentId": {
                    "type": "string"
                },
                "isApproved": {
                    "type": "boolean"
                },
                "needsModeration": {
                    "type": "boolean"
                }
            }
        },
        "compliment.RandomResult": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "sender": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "integer",
                    "description": "unix milliseconds"
                },
                "source": {
                    "type": "string",
                    "enum": [
                        "database",
                        "memory",
                        "fallback"
                    ]
                }
            }
        },
        "respond.SuccessEnvelope": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "data": {}
            }
        },
        "respond.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string",
                    "enum": [
                        "VALIDATION_ERROR",
                        "NOT_FOUND",
                        "RATE_LIMIT_EXCEEDED",
                        "TIMEOUT_ERROR",
                        "EXTERNAL_API_ERROR",
                        "INTERNAL_ERROR",
                        "METHOD_NOT_ALLOWED"
                    ]
                },
                "message": {
                    "type": "string"
                },
                "category": {
                    "type": "string",
                    "enum": [
                        "chaotic",
                        "chill",
                        "meme",
                        "sarcastic",
                        "gaming",
                        "nerdy",
                        "fantasy",
                        "scifi"
                    ]
                }
            }
        },
        "respond.ErrorEnvelope": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "error": {
                    "$ref": "#/definitions/respond.ErrorDetail"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Quirkit API",
	Description:      "Novelty fun tools: excuses, jokes, the quote of the day, shower thoughts,\nholidays, drinks, break suggestions, a decision spinner and compliments.\nEvery response is wrapped in a success envelope carrying data or error.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
