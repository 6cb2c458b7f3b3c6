package prompts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
)

type conn interface {
	repository.Querier
	repository.Executor
}

// queries implements Tx against either the pool or a transaction.
type queries struct {
	q conn
}

type repo struct {
	queries
	db *sql.DB
}

// NewRepository creates a PostgreSQL-backed Store.
func NewRepository(db *sql.DB) Store {
	return &repo{
		queries: queries{q: db},
		db:      db,
	}
}

func (r *repo) List(ctx context.Context, lq ListQuery) ([]Prompt, error) {
	qb, err := lq.Apply(query.NewBuilder(projection))
	if err != nil {
		return nil, err
	}

	q, args := qb.Build()
	prompts, err := repository.QueryMany(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}
	return prompts, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return Prompt{}, repository.MapError(err, ErrNotFound, ErrCodeConflict)
	}
	return p, nil
}

func (r *repo) Random(ctx context.Context) (Prompt, error) {
	q, args := query.NewBuilder(projection).BuildRandom()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return Prompt{}, repository.MapError(err, ErrNoPrompts, ErrCodeConflict)
	}
	return p, nil
}

func (r *repo) Batch(ctx context.Context, ids []uuid.UUID) ([]Prompt, error) {
	if len(ids) == 0 {
		return []Prompt{}, nil
	}

	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}

	q, args := query.
		NewBuilder(projection, newestFirst...).
		WhereIn("ID", values).
		Build()

	prompts, err := repository.QueryMany(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompt batch: %w", err)
	}
	return prompts, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, fn func(Prompt) (Prompt, bool, error)) (Prompt, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		current, err := lockPrompt(ctx, tx, id)
		if err != nil {
			return Prompt{}, err
		}

		next, changed, err := fn(current)
		if err != nil {
			return Prompt{}, err
		}
		if !changed {
			return current, nil
		}

		q := `
			UPDATE prompts
			SET title = $1, text = $2, response = $3
			WHERE id = $4
			RETURNING ` + returning

		p, err := repository.QueryOne(ctx, tx, q, []any{next.Title, next.Text, next.Response, id}, scanPrompt)
		if err != nil {
			return Prompt{}, repository.MapError(err, ErrNotFound, ErrCodeConflict)
		}
		return p, nil
	})
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID, fn func(Prompt) error) error {
	return repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		current, err := lockPrompt(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := fn(current); err != nil {
			return err
		}

		err = repository.ExecExpectOne(ctx, tx, "DELETE FROM prompts WHERE id = $1", id)
		return repository.MapError(err, ErrNotFound, ErrCodeConflict)
	})
}

func (r *repo) Atomic(ctx context.Context, fn func(Tx) error) error {
	return repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(queries{q: tx})
	})
}

func (s queries) CodeExists(ctx context.Context, code string) (bool, error) {
	found, err := repository.Exists(ctx, s.q,
		"SELECT 1 FROM prompts WHERE modification_code = $1", code)
	if err != nil {
		return false, fmt.Errorf("check modification code: %w", err)
	}
	return found, nil
}

func (s queries) Insert(ctx context.Context, np NewPrompt) (Prompt, error) {
	q := `
		INSERT INTO prompts (title, text, username, modification_code, read_only)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + returning

	args := []any{np.Title, np.Text, np.Username, np.ModificationCode, np.ReadOnly}

	p, err := repository.QueryOne(ctx, s.q, q, args, scanPrompt)
	if err != nil {
		return Prompt{}, repository.MapError(err, ErrNotFound, ErrCodeConflict)
	}
	return p, nil
}

func (s queries) ReadOnlyTitles(ctx context.Context) ([]string, error) {
	titles, err := repository.QueryMany(ctx, s.q,
		"SELECT title FROM prompts WHERE read_only", nil,
		func(sc repository.Scanner) (string, error) {
			var title string
			err := sc.Scan(&title)
			return title, err
		})
	if err != nil {
		return nil, fmt.Errorf("query read-only titles: %w", err)
	}
	return titles, nil
}

func lockPrompt(ctx context.Context, tx *sql.Tx, id uuid.UUID) (Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingleForUpdate("ID", id)

	p, err := repository.QueryOne(ctx, tx, q, args, scanPrompt)
	if err != nil {
		return Prompt{}, repository.MapError(err, ErrNotFound, ErrCodeConflict)
	}
	return p, nil
}
