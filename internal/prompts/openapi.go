package prompts

import "github.com/JaimeStill/promptvault/pkg/openapi"

type spec struct{}

// Spec describes the prompt endpoints for the API document.
func Spec() openapi.Contributor {
	return spec{}
}

func (spec) Paths() map[string]*openapi.PathItem {
	id := openapi.PathParam("id", "Prompt ID")
	code := openapi.HeaderParam(CodeHeader, "Modification code returned when the prompt was created", true)

	return map[string]*openapi.PathItem{
		"/prompts": {
			Get: &openapi.Operation{
				OperationID: "listPrompts",
				Summary:     "List prompts",
				Tags:        []string{"Prompts"},
				Parameters: []*openapi.Parameter{
					openapi.QueryParam("filter_title", "string", "Case-insensitive title substring", false),
					openapi.QueryParam("sort", "string", "Sort column (default created_at)", false),
					openapi.QueryParam("order", "string", "asc for ascending, otherwise descending", false),
				},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSONArray("Matching prompts", "Prompt"),
					400: openapi.ResponseRef("BadRequest"),
					429: openapi.ResponseRef("TooManyRequests"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
			Post: &openapi.Operation{
				OperationID: "createPrompt",
				Summary:     "Create a prompt",
				Tags:        []string{"Prompts"},
				RequestBody: openapi.RequestBodyJSON("CreatePrompt", true),
				Responses: map[int]*openapi.Response{
					201: openapi.ResponseJSON("Prompt created with its modification code", "CreatedPrompt"),
					400: openapi.ResponseRef("BadRequest"),
					429: openapi.ResponseRef("TooManyRequests"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
		},
		"/prompts/random": {
			Get: &openapi.Operation{
				OperationID: "randomPrompt",
				Summary:     "Get a random prompt",
				Tags:        []string{"Prompts"},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("A prompt", "Prompt"),
					404: openapi.ResponseRef("NotFound"),
					429: openapi.ResponseRef("TooManyRequests"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
		},
		"/prompts/batch": {
			Post: &openapi.Operation{
				OperationID: "batchPrompts",
				Summary:     "Get prompts by id",
				Description: "Malformed and unknown ids are omitted from the result.",
				Tags:        []string{"Prompts"},
				RequestBody: openapi.RequestBodyJSON("BatchRequest", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSONArray("Found prompts", "Prompt"),
					400: openapi.ResponseRef("BadRequest"),
					429: openapi.ResponseRef("TooManyRequests"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
		},
		"/prompts/{id}": {
			Get: &openapi.Operation{
				OperationID: "getPrompt",
				Summary:     "Get a prompt",
				Tags:        []string{"Prompts"},
				Parameters:  []*openapi.Parameter{id},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("The prompt", "Prompt"),
					404: openapi.ResponseRef("NotFound"),
					429: openapi.ResponseRef("TooManyRequests"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
			Put: &openapi.Operation{
				OperationID: "updatePrompt",
				Summary:     "Update a prompt",
				Description: "Blank title or text is ignored. A null response clears it.",
				Tags:        []string{"Prompts"},
				Parameters:  []*openapi.Parameter{id, code},
				RequestBody: openapi.RequestBodyJSON("UpdatePrompt", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Updated prompt", "Prompt"),
					400: openapi.ResponseRef("BadRequest"),
					403: openapi.ResponseRef("Forbidden"),
					404: openapi.ResponseRef("NotFound"),
					429: openapi.ResponseRef("TooManyRequests"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
			Delete: &openapi.Operation{
				OperationID: "deletePrompt",
				Summary:     "Delete a prompt",
				Tags:        []string{"Prompts"},
				Parameters:  []*openapi.Parameter{id, code},
				Responses: map[int]*openapi.Response{
					204: {Description: "Prompt deleted"},
					403: openapi.ResponseRef("Forbidden"),
					404: openapi.ResponseRef("NotFound"),
					429: openapi.ResponseRef("TooManyRequests"),
					500: openapi.ResponseRef("InternalError"),
				},
			},
		},
	}
}

func (spec) Schemas() map[string]*openapi.Schema {
	str := func(desc string, limit int) *openapi.Schema {
		return &openapi.Schema{Type: "string", Description: desc, MaxLength: openapi.IntPtr(limit)}
	}

	prompt := func() map[string]*openapi.Schema {
		return map[string]*openapi.Schema{
			"id":         {Type: "string", Format: "uuid"},
			"title":      str("Prompt title", MaxTitleLength),
			"text":       str("Prompt body", MaxTextLength),
			"username":   openapi.Nullable(str("Optional author name", MaxUsernameLength)),
			"response":   openapi.Nullable(str("Optional model response", MaxResponseLength)),
			"created_at": {Type: "string", Format: "date-time"},
			"read_only":  {Type: "boolean", Description: "Curated prompts cannot be modified"},
		}
	}

	created := prompt()
	created["modification_code"] = &openapi.Schema{
		Type:        "string",
		Description: "Required to update or delete the prompt. Returned only on creation.",
		MinLength:   openapi.IntPtr(CodeLength),
		MaxLength:   openapi.IntPtr(CodeLength),
	}

	required := []string{"id", "title", "text", "username", "response", "created_at", "read_only"}

	return map[string]*openapi.Schema{
		"Prompt": {
			Type:       "object",
			Required:   required,
			Properties: prompt(),
		},
		"CreatedPrompt": {
			Type:       "object",
			Required:   append(required, "modification_code"),
			Properties: created,
		},
		"CreatePrompt": {
			Type:     "object",
			Required: []string{"title", "text"},
			Properties: map[string]*openapi.Schema{
				"title":    str("Prompt title", MaxTitleLength),
				"text":     str("Prompt body", MaxTextLength),
				"username": openapi.Nullable(str("Optional author name", MaxUsernameLength)),
			},
		},
		"UpdatePrompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"title":    str("New title", MaxTitleLength),
				"text":     str("New body", MaxTextLength),
				"response": openapi.Nullable(str("New response, or null to clear", MaxResponseLength)),
			},
		},
		"BatchRequest": {
			Type:     "object",
			Required: []string{"ids"},
			Properties: map[string]*openapi.Schema{
				"ids": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
	}
}
