package openapi

import "maps"

// NewComponents returns the components every directory document shares:
// the error envelope, the page request, common error responses, and the
// bearer scheme of the admin routes.
func NewComponents() *Components {
	c := &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:       "object",
				Required:   []string{"error"},
				Properties: map[string]*Schema{"error": {Type: "string", Description: "Error message"}},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields, - prefix for descending", Example: "title,-created_at"},
				},
			},
		},
		Responses:       map[string]*Response{},
		SecuritySchemes: map[string]*SecurityScheme{
			"BearerAuth": {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
				Description:  "OIDC ID token issued for the admin dashboard",
			},
		},
	}

	for name, desc := range map[string]string{
		"BadRequest":      "Invalid request",
		"Unauthorized":    "Missing or invalid bearer token",
		"NotFound":        "Resource not found",
		"Conflict":        "Resource conflict",
		"PayloadTooLarge": "Upload exceeds the configured size limit",
	} {
		c.Responses[name] = &Response{Description: desc, Content: content("application/json", SchemaRef("Error"))}
	}
	return c
}

func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
