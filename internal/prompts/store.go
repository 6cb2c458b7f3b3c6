package prompts

import (
	"context"

	"github.com/google/uuid"
)

// Store persists prompts.
//
// Update and Delete lock the target row for the duration of the callback,
// so the checks it performs and the write that follows are atomic. A
// callback error aborts the operation without writing.
type Store interface {
	Tx

	List(ctx context.Context, q ListQuery) ([]Prompt, error)
	Find(ctx context.Context, id uuid.UUID) (Prompt, error)
	Random(ctx context.Context) (Prompt, error)
	Batch(ctx context.Context, ids []uuid.UUID) ([]Prompt, error)

	// Update passes the locked row to fn and writes the returned prompt's
	// title, text, and response when fn reports a change.
	Update(ctx context.Context, id uuid.UUID, fn func(Prompt) (Prompt, bool, error)) (Prompt, error)
	// Delete passes the locked row to fn and removes it when fn returns nil.
	Delete(ctx context.Context, id uuid.UUID, fn func(Prompt) error) error
	// Atomic runs fn in a single transaction, committed only when fn returns nil.
	Atomic(ctx context.Context, fn func(Tx) error) error
}

// Tx is the set of store operations available both directly and inside Atomic.
type Tx interface {
	CodeExists(ctx context.Context, code string) (bool, error)
	// Insert returns ErrCodeConflict when the modification code is taken.
	Insert(ctx context.Context, p NewPrompt) (Prompt, error)
	ReadOnlyTitles(ctx context.Context) ([]string, error)
}
