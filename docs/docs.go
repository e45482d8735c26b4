// Package docs holds the OpenAPI document served under /swagger. It follows
// the annotations in cmd/httpserver and httpserver; regenerate it with
// swag init -g cmd/httpserver/main.go after changing them.
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
        "/api/movies": {
            "get": {
                "description": "Search, filter by genre, sort and paginate the catalog",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "List Movies",
                "parameters": [
                    {"type": "string", "description": "Field to sort by (title, vote_average, release_date, ...)", "name": "sortBy", "in": "query"},
                    {"type": "string", "description": "asc or desc, default asc", "name": "sortOrder", "in": "query"},
                    {"type": "string", "description": "Case-insensitive substring", "name": "search", "in": "query"},
                    {"type": "string", "description": "title or genres; search is ignored without it", "name": "searchBy", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "csv", "description": "Genres, repeated or comma separated", "name": "filter", "in": "query"},
                    {"type": "integer", "description": "Records to skip, default 0", "name": "offset", "in": "query"},
                    {"type": "integer", "description": "Max records, default 10", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/httpserver.APIResponse"},
                                {"type": "object", "properties": {"result": {"$ref": "#/definitions/movie.Page"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            },
            "put": {
                "description": "Merge the given fields into the movie identified by id",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Update Movie",
                "parameters": [
                    {"description": "Fields to change", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpserver.UpdateMovieRequest"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/httpserver.APIResponse"},
                                {"type": "object", "properties": {"result": {"$ref": "#/definitions/movie.Movie"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            },
            "post": {
                "description": "Add a movie; the id is assigned by the server",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Create Movie",
                "parameters": [
                    {"description": "Movie Data", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpserver.CreateMovieRequest"}}
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/httpserver.APIResponse"},
                                {"type": "object", "properties": {"result": {"$ref": "#/definitions/movie.Movie"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        },
        "/api/movies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Get Movie",
                "parameters": [
                    {"type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/httpserver.APIResponse"},
                                {"type": "object", "properties": {"result": {"$ref": "#/definitions/movie.Movie"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            },
            "delete": {
                "tags": ["movies"],
                "summary": "Delete Movie",
                "parameters": [
                    {"type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        },
        "/healthcheck": {
            "get": {
                "description": "Check if server is alive",
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "httpserver.APIResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "info": {"type": "string"},
                "message": {"type": "string"},
                "result": {}
            }
        },
        "httpserver.CreateMovieRequest": {
            "type": "object",
            "properties": {
                "budget": {"type": "integer"},
                "genres": {"type": "array", "items": {"type": "string"}},
                "overview": {"type": "string"},
                "poster_path": {"type": "string"},
                "release_date": {"type": "string"},
                "revenue": {"type": "integer"},
                "runtime": {"type": "integer"},
                "tagline": {"type": "string"},
                "title": {"type": "string"},
                "vote_average": {"type": "number"},
                "vote_count": {"type": "integer"}
            }
        },
        "httpserver.UpdateMovieRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "budget": {"type": "integer", "minimum": 0},
                "genres": {"type": "array", "items": {"type": "string"}},
                "id": {"type": "integer", "minimum": 1},
                "overview": {"type": "string"},
                "poster_path": {"type": "string"},
                "release_date": {"type": "string"},
                "revenue": {"type": "integer", "minimum": 0},
                "runtime": {"type": "integer", "minimum": 0},
                "tagline": {"type": "string"},
                "title": {"type": "string"},
                "vote_average": {"type": "number", "minimum": 0},
                "vote_count": {"type": "integer", "minimum": 0}
            }
        },
        "movie.Movie": {
            "type": "object",
            "required": ["genres", "overview", "poster_path", "release_date", "title"],
            "properties": {
                "budget": {"type": "integer", "minimum": 0},
                "genres": {"type": "array", "items": {"type": "string"}},
                "id": {"type": "integer"},
                "overview": {"type": "string"},
                "poster_path": {"type": "string"},
                "release_date": {"type": "string"},
                "revenue": {"type": "integer", "minimum": 0},
                "runtime": {"type": "integer", "minimum": 0},
                "tagline": {"type": "string"},
                "title": {"type": "string"},
                "vote_average": {"type": "number", "minimum": 0},
                "vote_count": {"type": "integer", "minimum": 0}
            }
        },
        "movie.Page": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/movie.Movie"}},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "totalAmount": {"type": "integer"}
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
	Title:            "Movie Catalog API",
	Description:      "Query, filter, sort, paginate and edit a catalog of movies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
