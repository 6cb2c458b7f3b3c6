package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// SeedEntry is one curated prompt in a seed file.
type SeedEntry struct {
	Title    string  `json:"title"`
	Text     string  `json:"text"`
	Username *string `json:"username"`
}

// SeedResult reports the titles added, skipped as already present, and
// rejected as invalid.
type SeedResult struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped"`
	Invalid []string `json:"invalid"`
}

// DecodeSeed reads a JSON array of seed entries.
func DecodeSeed(r io.Reader) ([]SeedEntry, error) {
	var entries []SeedEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	return entries, nil
}

// Seed inserts entries as read-only prompts in a single transaction.
// Entries whose title matches an existing read-only prompt, or an earlier
// entry, are skipped, so running the same data twice adds nothing.
func (s *service) Seed(ctx context.Context, entries []SeedEntry) (*SeedResult, error) {
	result := &SeedResult{
		Added:   make([]string, 0),
		Skipped: make([]string, 0),
		Invalid: make([]string, 0),
	}

	err := s.store.Atomic(ctx, func(tx Tx) error {
		titles, err := tx.ReadOnlyTitles(ctx)
		if err != nil {
			return err
		}

		present := make(map[string]bool, len(titles)+len(entries))
		for _, t := range titles {
			present[t] = true
		}

		for i, e := range entries {
			np, err := CreateCommand(e).validate()
			if err != nil {
				s.logger.Warn("invalid seed entry", "index", i, "title", e.Title, "error", err)
				result.Invalid = append(result.Invalid, e.Title)
				continue
			}

			if present[np.Title] {
				result.Skipped = append(result.Skipped, np.Title)
				continue
			}

			code, err := s.codes.Next(ctx, tx.CodeExists)
			if err != nil {
				return err
			}
			np.ModificationCode = code
			np.ReadOnly = true

			if _, err := tx.Insert(ctx, np); err != nil {
				return fmt.Errorf("insert seed %q: %w", np.Title, err)
			}

			present[np.Title] = true
			result.Added = append(result.Added, np.Title)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("seed complete",
		"added", len(result.Added),
		"skipped", len(result.Skipped),
		"invalid", len(result.Invalid))

	return result, nil
}
