package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dafibh/gofinance/gofinance-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

const jsonMediaType = "application/json"

// OpenAPI3Spec is the OpenAPI 3.0 rendering of the generated Swagger doc
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// swagger2Doc holds the parts of a Swagger 2.0 doc the conversion reads
type swagger2Doc struct {
	Info        map[string]interface{}                       `json:"info"`
	Paths       map[string]map[string]map[string]interface{} `json:"paths"`
	Definitions map[string]interface{}                       `json:"definitions"`
}

// OpenAPIHandler serves the ledger API doc as OpenAPI 3.0 with serverURL as
// its only server.
func OpenAPIHandler(serverURL string) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return NewInternalError(c, "Failed to read API doc")
		}

		spec, err := convertSwagger2([]byte(doc), serverURL)
		if err != nil {
			return NewInternalError(c, "Failed to convert API doc")
		}
		return c.JSON(http.StatusOK, spec)
	}
}

func convertSwagger2(doc []byte, serverURL string) (*OpenAPI3Spec, error) {
	var src swagger2Doc
	if err := json.Unmarshal(doc, &src); err != nil {
		return nil, fmt.Errorf("decode swagger doc: %w", err)
	}

	paths := make(map[string]interface{}, len(src.Paths))
	for path, operations := range src.Paths {
		converted := make(map[string]interface{}, len(operations))
		for method, op := range operations {
			converted[method] = convertOperation(op)
		}
		paths[path] = converted
	}

	spec := &OpenAPI3Spec{
		OpenAPI: "3.0.3",
		Info:    src.Info,
		Servers: []Server{{URL: serverURL, Description: "Ledger API"}},
		Paths:   paths,
	}
	if len(src.Definitions) > 0 {
		spec.Components = map[string]interface{}{"schemas": rewriteRefs(src.Definitions)}
	}
	return spec, nil
}

// convertOperation moves body parameters into requestBody and response
// schemas under a JSON media type.
func convertOperation(op map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(op))
	for key, value := range op {
		switch key {
		case "consumes", "produces", "parameters", "responses":
		default:
			out[key] = value
		}
	}

	params, _ := op["parameters"].([]interface{})
	var converted []interface{}
	for _, p := range params {
		param, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		if param["in"] == "body" {
			body := map[string]interface{}{
				"content": jsonContent(param["schema"]),
			}
			if required, ok := param["required"]; ok {
				body["required"] = required
			}
			if desc, ok := param["description"]; ok {
				body["description"] = desc
			}
			out["requestBody"] = body
			continue
		}
		converted = append(converted, convertParameter(param))
	}
	if len(converted) > 0 {
		out["parameters"] = converted
	}

	if responses, ok := op["responses"].(map[string]interface{}); ok {
		convertedResponses := make(map[string]interface{}, len(responses))
		for status, r := range responses {
			resp, ok := r.(map[string]interface{})
			if !ok {
				continue
			}
			entry := map[string]interface{}{"description": resp["description"]}
			if schema, ok := resp["schema"]; ok {
				entry["content"] = jsonContent(schema)
			}
			convertedResponses[status] = entry
		}
		out["responses"] = convertedResponses
	}
	return out
}

func convertParameter(param map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	schema := make(map[string]interface{})
	for key, value := range param {
		switch key {
		case "name", "in", "description", "required":
			out[key] = value
		case "type", "format", "enum", "default", "items":
			schema[key] = rewriteRefs(value)
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

func jsonContent(schema interface{}) map[string]interface{} {
	return map[string]interface{}{
		jsonMediaType: map[string]interface{}{"schema": rewriteRefs(schema)},
	}
}

// rewriteRefs points every $ref at components/schemas
func rewriteRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			out[key] = rewriteRefs(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = rewriteRefs(item)
		}
		return out
	default:
		return data
	}
}
