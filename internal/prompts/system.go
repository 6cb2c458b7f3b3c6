package prompts

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// System defines the public contract for prompt domain operations.
type System interface {
	// Handler builds the HTTP handler. createMiddleware wraps only the
	// create route, outermost first.
	Handler(createMiddleware ...func(http.Handler) http.Handler) *Handler

	List(ctx context.Context, q ListQuery) ([]Prompt, error)
	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Random(ctx context.Context) (*Prompt, error)
	Batch(ctx context.Context, ids []string) ([]Prompt, error)
	Create(ctx context.Context, cmd CreateCommand) (*Created, error)
	Update(ctx context.Context, id uuid.UUID, code string, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, id uuid.UUID, code string) error
	Seed(ctx context.Context, entries []SeedEntry) (*SeedResult, error)
}
