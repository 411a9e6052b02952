//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gentlementlegen/assistive-pricing/internal/platform/config"

	docs "github.com/gentlementlegen/assistive-pricing/internal/services/api/docs"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

// mutators run last, after the shared touch-ups
var mutators []SpecMutator

// docReader is a seam so tests can inject documents without regenerating docs
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a spec mutator; call it from module init so wiring is automatic
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// serveDocJSON parses the generated document, applies the shared touch-ups
// and module mutators, then serves the result
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		normalizeOpenAPI(spec)
		retitle(spec)
		ensureErrorSchema(spec)
		eachOperation(spec, func(op map[string]any) {
			defaultResponse(op, "500", errorResponse(500, "Internal Server Error", 1, "panic recovered"))
			defaultResponse(op, "400", errorResponse(400, "Bad Request", 8, "aggregation must be one of [sum max min]"))
		})
		applySecurity(spec)

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// childMap returns parent[key] as a map, creating it when absent or mistyped
func childMap(parent map[string]any, key string) map[string]any {
	if m, ok := parent[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	parent[key] = m
	return m
}

// normalizeOpenAPI lifts swagger 2 documents to OAS3 and pins 3.1 down to
// 3.0.3, the newest version the embedded UI renders. The served base url
// lives in servers under OAS3, not BasePath
func normalizeOpenAPI(spec map[string]any) {
	if _, has := spec["swagger"]; has {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": "/api/v1"}}
	}
}

// retitle appends CORE_API_DOCS_TITLE_SUFFIX to the document title when set
func retitle(spec map[string]any) {
	suffix := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", "")
	if suffix == "" {
		return
	}
	info := childMap(spec, "info")
	if title, ok := info["title"].(string); ok {
		info["title"] = title + " " + suffix
	}
}

// ensureErrorSchema registers the runtime error envelope model once, kept
// minimal so it does not drift from the wire shape
func ensureErrorSchema(spec map[string]any) {
	schemas := childMap(childMap(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// eachOperation visits every verb node under paths
func eachOperation(spec map[string]any, visit func(op map[string]any)) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			if op, ok := opAny.(map[string]any); ok {
				visit(op)
			}
		}
	}
}

// defaultResponse injects resp under code unless the operation documents it
func defaultResponse(op map[string]any, code string, resp map[string]any) {
	responses := childMap(op, "responses")
	if _, ok := responses[code]; !ok {
		responses[code] = resp
	}
}

// errorResponse builds a documented error with an example in the wire shape
func errorResponse(status int, statusText string, code int, msg string) map[string]any {
	return map[string]any{
		"description": statusText,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      statusText,
					"code":        code,
					"error":       msg,
					"request_id":  "pricing-api-5f6d/abc-000017",
				},
			},
		},
	}
}

// webhookSignatureScheme is the securitySchemes key marked operations reference
const webhookSignatureScheme = "WebhookSignature"

// applySecurity stamps every operation recorded via MarkSecurePath with the
// webhook signature scheme so the docs advertise the requirement
func applySecurity(spec map[string]any) {
	if len(securedOps) == 0 {
		return
	}
	schemes := childMap(childMap(spec, "components"), "securitySchemes")
	if _, ok := schemes[webhookSignatureScheme]; !ok {
		schemes[webhookSignatureScheme] = map[string]any{
			"type":        "apiKey",
			"in":          "header",
			"name":        "X-Hub-Signature-256",
			"description": "HMAC SHA-256 of the raw body, keyed with the shared webhook secret",
		}
	}
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for path, verbs := range securedOps {
		node, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		for _, verb := range verbs {
			if op, ok := node[verb].(map[string]any); ok {
				op["security"] = []any{map[string]any{webhookSignatureScheme: []any{}}}
			}
		}
	}
}
