package prompts_test

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptvault/internal/prompts"
)

// memStore is an in-memory prompts.Store for service tests.
type memStore struct {
	mu      sync.Mutex
	prompts []prompts.Prompt
	clock   time.Time

	// insertErr, when set, is consulted before every insert.
	insertErr func(np prompts.NewPrompt) error
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memStore) snapshot() []prompts.Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.prompts)
}

func (m *memStore) add(p prompts.Prompt) prompts.Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		m.clock = m.clock.Add(time.Minute)
		p.CreatedAt = m.clock
	}
	m.prompts = append(m.prompts, p)
	return p
}

func (m *memStore) List(_ context.Context, q prompts.ListQuery) ([]prompts.Prompt, error) {
	sort, err := q.SortField()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]prompts.Prompt, 0)
	for _, p := range m.prompts {
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(q.Title)) {
			result = append(result, p)
		}
	}

	slices.SortStableFunc(result, func(a, b prompts.Prompt) int {
		var c int
		switch sort.Field {
		case "Title":
			c = cmp.Compare(a.Title, b.Title)
		case "Text":
			c = cmp.Compare(a.Text, b.Text)
		case "ReadOnly":
			c = cmp.Compare(boolInt(a.ReadOnly), boolInt(b.ReadOnly))
		case "ID":
			c = cmp.Compare(a.ID.String(), b.ID.String())
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if sort.Descending {
			return -c
		}
		return c
	})

	return result, nil
}

func (m *memStore) Find(_ context.Context, id uuid.UUID) (prompts.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(id); i >= 0 {
		return m.prompts[i], nil
	}
	return prompts.Prompt{}, prompts.ErrNotFound
}

func (m *memStore) Random(_ context.Context) (prompts.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return prompts.Prompt{}, prompts.ErrNoPrompts
	}
	return m.prompts[len(m.prompts)-1], nil
}

func (m *memStore) Batch(_ context.Context, ids []uuid.UUID) ([]prompts.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]prompts.Prompt, 0)
	for _, p := range m.prompts {
		if slices.Contains(ids, p.ID) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *memStore) Update(_ context.Context, id uuid.UUID, fn func(prompts.Prompt) (prompts.Prompt, bool, error)) (prompts.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return prompts.Prompt{}, prompts.ErrNotFound
	}
	next, changed, err := fn(m.prompts[i])
	if err != nil {
		return prompts.Prompt{}, err
	}
	if changed {
		m.prompts[i].Title = next.Title
		m.prompts[i].Text = next.Text
		m.prompts[i].Response = next.Response
	}
	return m.prompts[i], nil
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID, fn func(prompts.Prompt) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return prompts.ErrNotFound
	}
	if err := fn(m.prompts[i]); err != nil {
		return err
	}
	m.prompts = slices.Delete(m.prompts, i, i+1)
	return nil
}

func (m *memStore) Atomic(ctx context.Context, fn func(prompts.Tx) error) error {
	saved := m.snapshot()
	if err := fn(m); err != nil {
		m.mu.Lock()
		m.prompts = saved
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.ContainsFunc(m.prompts, func(p prompts.Prompt) bool {
		return p.ModificationCode == code
	}), nil
}

func (m *memStore) Insert(_ context.Context, np prompts.NewPrompt) (prompts.Prompt, error) {
	if m.insertErr != nil {
		if err := m.insertErr(np); err != nil {
			return prompts.Prompt{}, err
		}
	}

	if taken, _ := m.CodeExists(context.Background(), np.ModificationCode); taken {
		return prompts.Prompt{}, prompts.ErrCodeConflict
	}

	return m.add(prompts.Prompt{
		Title:            np.Title,
		Text:             np.Text,
		Username:         np.Username,
		ModificationCode: np.ModificationCode,
		ReadOnly:         np.ReadOnly,
	}), nil
}

func (m *memStore) ReadOnlyTitles(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	titles := make([]string, 0)
	for _, p := range m.prompts {
		if p.ReadOnly {
			titles = append(titles, p.Title)
		}
	}
	return titles, nil
}

func (m *memStore) index(id uuid.UUID) int {
	return slices.IndexFunc(m.prompts, func(p prompts.Prompt) bool { return p.ID == id })
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
