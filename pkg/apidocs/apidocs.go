package apidocs

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/swaggo/swag"
)

// Operation is one documented endpoint
type Operation struct {
	Method  string
	Path    string
	Summary string
	Tag     string
}

// FromRouter lists every method/path pair registered on router
func FromRouter(router *mux.Router) []Operation {
	var ops []Operation
	router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		for _, method := range methods {
			ops = append(ops, Operation{
				Method:  strings.ToLower(method),
				Path:    path,
				Summary: method + " " + path,
				Tag:     tagFor(path),
			})
		}
		return nil
	})

	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path == ops[j].Path {
			return ops[i].Method < ops[j].Method
		}
		return ops[i].Path < ops[j].Path
	})
	return ops
}

// Register publishes an OpenAPI 2 document for service under its own
// swag instance name.
func Register(service, title string, ops []Operation) *swag.Spec {
	paths := map[string]map[string]any{}
	for _, op := range ops {
		if paths[op.Path] == nil {
			paths[op.Path] = map[string]any{}
		}
		paths[op.Path][op.Method] = map[string]any{
			"summary":  op.Summary,
			"tags":     []string{op.Tag},
			"produces": []string{"application/json"},
			"responses": map[string]any{
				"200": map[string]any{"description": "OK"},
			},
		}
	}

	doc := map[string]any{
		"swagger": "2.0",
		"info": map[string]any{
			"title":   title,
			"version": "1.0",
		},
		"basePath": "/",
		"paths":    paths,
	}
	raw, _ := json.Marshal(doc)

	spec := &swag.Spec{
		Version:          "1.0",
		BasePath:         "/",
		Title:            title,
		InfoInstanceName: service,
		SwaggerTemplate:  string(raw),
		LeftDelim:        "{{",
		RightDelim:       "}}",
	}
	swag.Register(spec.InstanceName(), spec)
	return spec
}

// Handler serves the Swagger UI for service at /swagger/
func Handler(service string) http.Handler {
	return httpSwagger.Handler(
		httpSwagger.InstanceName(service),
		httpSwagger.URL("/swagger/doc.json"),
	)
}

func tagFor(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if part == "api" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return "default"
}
