package openapi

import "maps"

// NewComponents creates Components with the shared Error schema and the
// error responses every JSON endpoint can return.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":    errorResponse("Invalid request"),
			"Forbidden":     errorResponse("Missing or invalid credential, or read-only resource"),
			"NotFound":      errorResponse("Resource not found"),
			"InternalError": errorResponse("Internal server error"),
			"TooManyRequests": {
				Description: "Rate limit exceeded",
				Headers: map[string]*Header{
					"Retry-After": {
						Description: "Seconds until the exhausted window resets",
						Schema:      &Schema{Type: "integer"},
					},
				},
				Content: map[string]*MediaType{
					"application/json": {Schema: SchemaRef("Error")},
				},
			},
		},
	}
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
