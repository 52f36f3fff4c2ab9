package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/phrazzld/question-api/internal/platform/logger"
)

// RouteDoc annotates one HTTP route for the API description.
type RouteDoc struct {
	Method      string
	Path        string
	Tag         string
	Summary     string
	Secured     bool
	RequestBody string // schema name, empty for no body
	Responses   map[int]string
}

// RouteDocs lists every resource route served under /api.
var RouteDocs = []RouteDoc{
	{
		Method: http.MethodPost, Path: "/api/papers", Tag: "Papers",
		Summary: "Create a paper authored by the caller", Secured: true, RequestBody: "PaperInput",
		Responses: map[int]string{201: MsgPaperCreated, 400: "Failure", 401: "Unauthorized"},
	},
	{
		Method: http.MethodGet, Path: "/api/papers", Tag: "Papers",
		Summary:   "List all papers with their authors",
		Responses: map[int]string{201: MsgPapersFetched, 400: "Failure"},
	},
	{
		Method: http.MethodGet, Path: "/api/papers/{id}", Tag: "Papers",
		Summary:   "Fetch a paper with its author",
		Responses: map[int]string{200: MsgPaperFetched, 404: MsgPaperNotFound, 400: "Failure"},
	},
	{
		Method: http.MethodPut, Path: "/api/papers/{id}", Tag: "Papers",
		Summary: "Update a paper's title or content", Secured: true, RequestBody: "PaperPatch",
		Responses: map[int]string{201: MsgPaperUpdated, 404: MsgPaperNotFound, 400: "Failure", 401: "Unauthorized"},
	},
	{
		Method: http.MethodDelete, Path: "/api/papers/{id}", Tag: "Papers",
		Summary: "Delete a paper", Secured: true,
		Responses: map[int]string{201: MsgPaperDeleted, 404: MsgPaperNotFound, 400: "Failure", 401: "Unauthorized"},
	},
	{
		Method: http.MethodPost, Path: "/api/users/register", Tag: "Users",
		Summary: "Register a user", RequestBody: "RegisterInput",
		Responses: map[int]string{201: MsgUserRegistered, 400: "Failure"},
	},
	{
		Method: http.MethodPost, Path: "/api/users/login", Tag: "Users",
		Summary: "Exchange credentials for a bearer token", RequestBody: "LoginInput",
		Responses: map[int]string{200: MsgLoginSuccess, 400: "Invalid credentials"},
	},
	{
		Method: http.MethodGet, Path: "/api/users", Tag: "Users",
		Summary:   "List all users",
		Responses: map[int]string{201: MsgUsersFetched, 400: "Failure"},
	},
	{
		Method: http.MethodGet, Path: "/api/users/{id}", Tag: "Users",
		Summary:   "Fetch a user",
		Responses: map[int]string{200: MsgUserFetched, 404: MsgUserNotFound, 400: "Failure"},
	},
	{
		Method: http.MethodPut, Path: "/api/users/{id}", Tag: "Users",
		Summary: "Update a user", Secured: true, RequestBody: "UserPatch",
		Responses: map[int]string{201: MsgUserUpdated, 404: MsgUserNotFound, 400: "Failure", 401: "Unauthorized"},
	},
	{
		Method: http.MethodDelete, Path: "/api/users/{id}", Tag: "Users",
		Summary: "Delete a user", Secured: true,
		Responses: map[int]string{201: MsgUserDeleted, 404: MsgUserNotFound, 400: "Failure", 401: "Unauthorized"},
	},
}

var pathParamPattern = regexp.MustCompile(`\{([^}]+)\}`)

type object = map[string]interface{}

func ref(name string) object {
	return object{"$ref": "#/components/schemas/" + name}
}

func str(format string) object {
	s := object{"type": "string"}
	if format != "" {
		s["format"] = format
	}
	return s
}

func schemas() object {
	author := object{
		"type": "object",
		"properties": object{
			"_id":   str(""),
			"name":  str(""),
			"email": str("email"),
		},
	}
	return object{
		"Envelope": object{
			"type":     "object",
			"required": []string{"code", "message", "body"},
			"properties": object{
				"code":    object{"type": "integer"},
				"message": str(""),
				"body":    object{},
			},
		},
		"Author": author,
		"Paper": object{
			"type": "object",
			"properties": object{
				"_id":     str(""),
				"title":   str(""),
				"content": str(""),
				"author": object{
					"nullable": true,
					"oneOf":    []interface{}{str(""), ref("Author")},
				},
				"createdAt": str("date-time"),
				"updatedAt": str("date-time"),
			},
		},
		"PaperInput": object{
			"type":     "object",
			"required": []string{"title", "content"},
			"properties": object{
				"title":   str(""),
				"content": str(""),
			},
		},
		"PaperPatch": object{
			"type": "object",
			"properties": object{
				"title":   str(""),
				"content": str(""),
			},
		},
		"User": object{
			"type": "object",
			"properties": object{
				"_id":       str(""),
				"name":      str(""),
				"email":     str("email"),
				"createdAt": str("date-time"),
				"updatedAt": str("date-time"),
			},
		},
		"RegisterInput": object{
			"type":     "object",
			"required": []string{"name", "email", "password"},
			"properties": object{
				"name":     str(""),
				"email":    str("email"),
				"password": object{"type": "string", "format": "password", "minLength": 8, "maxLength": 72},
			},
		},
		"LoginInput": object{
			"type":     "object",
			"required": []string{"email", "password"},
			"properties": object{
				"email":    str("email"),
				"password": object{"type": "string", "format": "password"},
			},
		},
		"UserPatch": object{
			"type": "object",
			"properties": object{
				"name":     str(""),
				"email":    str("email"),
				"password": object{"type": "string", "format": "password", "minLength": 8, "maxLength": 72},
			},
		},
	}
}

func operation(doc RouteDoc) object {
	responses := object{}
	for code, description := range doc.Responses {
		responses[strconv.Itoa(code)] = object{
			"description": description,
			"content": object{
				"application/json": object{"schema": ref("Envelope")},
			},
		}
	}

	op := object{
		"tags":        []string{doc.Tag},
		"summary":     doc.Summary,
		"operationId": operationID(doc),
		"responses":   responses,
	}

	var params []interface{}
	for _, m := range pathParamPattern.FindAllStringSubmatch(doc.Path, -1) {
		params = append(params, object{
			"name":     m[1],
			"in":       "path",
			"required": true,
			"schema":   str(""),
		})
	}
	if len(params) > 0 {
		op["parameters"] = params
	}

	if doc.RequestBody != "" {
		op["requestBody"] = object{
			"required": true,
			"content": object{
				"application/json": object{"schema": ref(doc.RequestBody)},
			},
		}
	}
	if doc.Secured {
		op["security"] = []interface{}{object{"bearerAuth": []string{}}}
	}
	return op
}

func operationID(doc RouteDoc) string {
	parts := []string{strings.ToLower(doc.Method)}
	for _, segment := range strings.Split(strings.Trim(doc.Path, "/"), "/") {
		segment = strings.Trim(segment, "{}")
		if segment == "" || segment == "api" {
			continue
		}
		parts = append(parts, strings.ToUpper(segment[:1])+segment[1:])
	}
	return strings.Join(parts, "")
}

// BuildOpenAPI returns the OpenAPI 3.0 document describing routes.
func BuildOpenAPI(title, version string, routes []RouteDoc) map[string]interface{} {
	paths := object{}
	for _, doc := range routes {
		item, ok := paths[doc.Path].(object)
		if !ok {
			item = object{}
			paths[doc.Path] = item
		}
		item[strings.ToLower(doc.Method)] = operation(doc)
	}

	return object{
		"openapi": "3.0.3",
		"info": object{
			"title":   title,
			"version": version,
		},
		"paths": paths,
		"components": object{
			"schemas": schemas(),
			"securitySchemes": object{
				"bearerAuth": object{
					"type":         "http",
					"scheme":       "bearer",
					"bearerFormat": "JWT",
				},
			},
		},
	}
}

// NewDocsHandler serves the OpenAPI document for RouteDocs. The document is
// rendered once.
func NewDocsHandler(title, version string, log *slog.Logger) http.HandlerFunc {
	document, err := json.Marshal(BuildOpenAPI(title, version, RouteDocs))
	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			logger.FromContextOrDefault(r.Context(), log).
				Error("failed to render API description", slog.String("error", err.Error()))
			http.Error(w, "failed to render API description", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(document)
	}
}
