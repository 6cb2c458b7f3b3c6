package prompts

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// DefaultMaxBatchSize caps batch requests when no limit is configured.
const DefaultMaxBatchSize = 100

type service struct {
	store        Store
	codes        *Codes
	logger       *slog.Logger
	maxBatchSize int
}

// New creates the prompt System over store.
func New(store Store, codes *Codes, logger *slog.Logger, maxBatchSize int) System {
	if maxBatchSize < 1 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &service{
		store:        store,
		codes:        codes,
		logger:       logger.With("system", "prompts"),
		maxBatchSize: maxBatchSize,
	}
}

func (s *service) Handler(createMiddleware ...func(http.Handler) http.Handler) *Handler {
	return NewHandler(s, s.logger, createMiddleware...)
}

func (s *service) List(ctx context.Context, q ListQuery) ([]Prompt, error) {
	if _, err := q.SortField(); err != nil {
		return nil, err
	}
	return s.store.List(ctx, q)
}

func (s *service) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	p, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *service) Random(ctx context.Context) (*Prompt, error) {
	p, err := s.store.Random(ctx)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Batch returns the prompts matching ids. Malformed and unknown ids are
// omitted from the result.
func (s *service) Batch(ctx context.Context, ids []string) ([]Prompt, error) {
	if len(ids) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: batch cannot exceed %d ids", ErrValidation, s.maxBatchSize)
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		parsed = append(parsed, id)
	}

	return s.store.Batch(ctx, parsed)
}

// Create stores a new prompt under a fresh modification code. A code taken
// between the existence check and the insert is retried within the same
// attempt budget.
func (s *service) Create(ctx context.Context, cmd CreateCommand) (*Created, error) {
	np, err := cmd.validate()
	if err != nil {
		return nil, err
	}

	for range s.codes.Attempts() {
		code, err := s.codes.Next(ctx, s.store.CodeExists)
		if err != nil {
			return nil, err
		}
		np.ModificationCode = code

		p, err := s.store.Insert(ctx, np)
		if errors.Is(err, ErrCodeConflict) {
			s.logger.Warn("modification code collision on insert", "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("prompt created", "id", p.ID)
		return &Created{Prompt: p, ModificationCode: p.ModificationCode}, nil
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrExhaustedRetries, s.codes.Attempts())
}

func (s *service) Update(ctx context.Context, id uuid.UUID, code string, cmd UpdateCommand) (*Prompt, error) {
	p, err := s.store.Update(ctx, id, func(current Prompt) (Prompt, bool, error) {
		if err := authorize(current, code); err != nil {
			return current, false, err
		}
		return cmd.apply(current)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("prompt updated", "id", p.ID)
	return &p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, code string) error {
	err := s.store.Delete(ctx, id, func(current Prompt) error {
		return authorize(current, code)
	})
	if err != nil {
		return err
	}

	s.logger.Info("prompt deleted", "id", id)
	return nil
}

// authorize checks that p may be modified with code. Read-only prompts
// reject every code.
func authorize(p Prompt, code string) error {
	if p.ReadOnly {
		return ErrReadOnly
	}
	if code == "" || subtle.ConstantTimeCompare([]byte(code), []byte(p.ModificationCode)) != 1 {
		return ErrForbidden
	}
	return nil
}
