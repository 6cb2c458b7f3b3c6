package prompts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptvault/pkg/handlers"
	"github.com/JaimeStill/promptvault/pkg/routes"
)

// CodeHeader carries the modification code on update and delete requests.
const CodeHeader = "X-Modification-Code"

// Handler provides HTTP endpoints for prompt operations.
type Handler struct {
	sys              System
	logger           *slog.Logger
	createMiddleware []func(http.Handler) http.Handler
}

// NewHandler creates a Handler. createMiddleware wraps only the create route.
func NewHandler(
	sys System,
	logger *slog.Logger,
	createMiddleware ...func(http.Handler) http.Handler,
) *Handler {
	return &Handler{
		sys:              sys,
		logger:           logger.With("handler", "prompts"),
		createMiddleware: createMiddleware,
	}
}

// Routes returns the route group definition for prompt endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/prompts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/random", Handler: h.Random},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/batch", Handler: h.Batch},
			{Method: "POST", Pattern: "", Handler: h.Create, Middleware: h.createMiddleware},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns all prompts, optionally filtered by title and sorted.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.sys.List(r.Context(), ListQueryFromValues(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, prompts)
}

// Random returns one prompt chosen at random.
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.sys.Random(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, prompt)
}

// Find returns a single prompt by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	prompt, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, prompt)
}

// Batch returns the prompts whose ids are listed in the request body.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decode(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if req.IDs == nil {
		err := fmt.Errorf("%w: ids must be an array", ErrValidation)
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	prompts, err := h.sys.Batch(r.Context(), req.IDs)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, prompts)
}

// Create stores a new prompt and returns it with its modification code.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := decode(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	created, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, created)
}

// Update modifies a prompt authorized by the modification code header.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	var cmd UpdateCommand
	if err := decode(r, &cmd); err != nil {
		cmd = UpdateCommand{BodyErr: err}
	}

	prompt, err := h.sys.Update(r.Context(), id, r.Header.Get(CodeHeader), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, prompt)
}

// Delete removes a prompt authorized by the modification code header.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id, r.Header.Get(CodeHeader)); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into v, reporting every failure as ErrValidation.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return fmt.Errorf("%w: request body exceeds %d bytes", ErrValidation, maxErr.Limit)
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: request body is required", ErrValidation)
	case errors.Is(err, ErrValidation):
		return err
	default:
		return fmt.Errorf("%w: malformed JSON: %v", ErrValidation, err)
	}
}
