// Package docs registers the OpenAPI description served at /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "CBB Data"},
        "license": {"name": "MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/metadata": {
            "get": {
                "produces": ["application/json"],
                "tags": ["snapshot"],
                "summary": "Snapshot metadata",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/provider.Metadata"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "List teams",
                "parameters": [
                    {"type": "string", "description": "Conference code", "name": "conference", "in": "query"},
                    {"type": "string", "description": "Substring of team name, alternate name or teamId", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TeamList"}}
                }
            }
        },
        "/teams/{teamId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Get team",
                "parameters": [
                    {"type": "string", "description": "Team slug", "name": "teamId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/provider.TeamSeason"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/rankings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rankings"],
                "summary": "Rankings",
                "parameters": [
                    {"type": "string", "default": "rank", "description": "Sort field (JSON name)", "name": "sort", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "default": "asc", "description": "Sort direction", "name": "dir", "in": "query"},
                    {"type": "string", "description": "Conference code", "name": "conference", "in": "query"},
                    {"type": "string", "description": "Team name search", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TeamList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/conferences": {
            "get": {
                "produces": ["application/json"],
                "tags": ["conferences"],
                "summary": "List conferences",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dataset.Conference"}}}
                }
            }
        },
        "/matchup": {
            "get": {
                "produces": ["application/json"],
                "tags": ["matchup"],
                "summary": "Head-to-head matchup",
                "parameters": [
                    {"type": "string", "description": "Team A slug", "name": "teamA", "in": "query", "required": true},
                    {"type": "string", "description": "Team B slug", "name": "teamB", "in": "query", "required": true},
                    {"enum": ["neutral", "home", "away"], "type": "string", "default": "neutral", "description": "Where team A plays", "name": "site", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dataset.Matchup"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "provider.Metadata": {
            "type": "object",
            "properties": {
                "lastUpdated": {"type": "string"},
                "season": {"type": "string"},
                "teamCount": {"type": "integer"},
                "sources": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "provider.TeamSeason": {
            "type": "object",
            "properties": {
                "teamId": {"type": "string"},
                "teamName": {"type": "string"},
                "teamNameAlt": {"type": "array", "items": {"type": "string"}},
                "conference": {"type": "string"},
                "logoUrl": {"type": "string"},
                "season": {"type": "string"},
                "lastUpdated": {"type": "string"},
                "games": {"type": "integer"},
                "record": {"type": "string"},
                "rank": {"type": "integer"},
                "adjEM": {"type": "number"},
                "adjO": {"type": "number"},
                "adjD": {"type": "number"},
                "adjTempo": {"type": "number"},
                "eFG": {"type": "number"},
                "tov": {"type": "number"},
                "orb": {"type": "number"},
                "ftr": {"type": "number"},
                "eFG_d": {"type": "number"},
                "tov_d": {"type": "number"},
                "drb": {"type": "number"},
                "ftr_d": {"type": "number"},
                "eFG_margin": {"type": "number"},
                "tov_edge": {"type": "number"},
                "reb_edge": {"type": "number"},
                "ftr_margin": {"type": "number"},
                "fg2_pct": {"type": "number", "x-nullable": true},
                "fg2_pct_d": {"type": "number", "x-nullable": true},
                "fg3_pct": {"type": "number", "x-nullable": true},
                "fg3_pct_d": {"type": "number", "x-nullable": true},
                "fg3_rate": {"type": "number", "x-nullable": true},
                "fg3_rate_d": {"type": "number", "x-nullable": true},
                "wab": {"type": "number", "x-nullable": true},
                "sor": {"type": "number", "x-nullable": true},
                "luck": {"type": "number", "x-nullable": true},
                "sos_adjEM": {"type": "number", "x-nullable": true},
                "ncsos_adjEM": {"type": "number", "x-nullable": true},
                "barthag": {"type": "number", "x-nullable": true},
                "sources": {"type": "object", "additionalProperties": {"type": "boolean"}}
            }
        },
        "handler.TeamList": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "teams": {"type": "array", "items": {"$ref": "#/definitions/provider.TeamSeason"}}
            }
        },
        "dataset.Conference": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "teamCount": {"type": "integer"}
            }
        },
        "dataset.Matchup": {
            "type": "object",
            "properties": {
                "teamA": {"$ref": "#/definitions/provider.TeamSeason"},
                "teamB": {"$ref": "#/definitions/provider.TeamSeason"},
                "matchup": {"type": "object"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "CBB Data API",
	Description:      "Read-only API over the unified college basketball team snapshot.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
