package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/database"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

type fakeStore struct {
	blobs map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: make(map[string][]byte)}
}

func (f *fakeStore) Download(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.blobs[key] = data
	return nil
}

func (f *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.blobs[key]
	return ok, nil
}

func (f *fakeStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	for name := range f.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

const seedJSON = `[{"title":"Curated","text":"Body","username":"curator"}]`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed_data.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    options
		wantErr bool
	}{
		{"file", options{file: "a.json"}, false},
		{"blob", options{blob: "seeds/a.json"}, false},
		{"list", options{list: true}, false},
		{"upload", options{file: "a.json", upload: "seeds/a.json"}, false},
		{"nothing", options{}, true},
		{"both sources", options{file: "a.json", blob: "b.json"}, true},
		{"upload without file", options{upload: "seeds/a.json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("from file", func(t *testing.T) {
		entries, err := loadEntries(ctx, options{file: writeSeedFile(t, seedJSON)}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 || entries[0].Title != "Curated" {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("from blob", func(t *testing.T) {
		store := newFakeStore()
		store.blobs["seeds/prompts.json"] = []byte(seedJSON)

		entries, err := loadEntries(ctx, options{blob: "seeds/prompts.json"}, store)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("missing blob", func(t *testing.T) {
		_, err := loadEntries(ctx, options{blob: "nope.json"}, newFakeStore())
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("blob without storage", func(t *testing.T) {
		_, err := loadEntries(ctx, options{blob: "seeds/prompts.json"}, nil)
		if !errors.Is(err, storage.ErrNotConfigured) {
			t.Fatalf("err = %v, want ErrNotConfigured", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadEntries(ctx, options{file: filepath.Join(t.TempDir(), "none.json")}, nil)
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestUploadSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads valid file", func(t *testing.T) {
		store := newFakeStore()

		if err := uploadSeed(ctx, store, writeSeedFile(t, seedJSON), "seeds/prompts.json", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(store.blobs["seeds/prompts.json"]) != seedJSON {
			t.Errorf("blob = %q", store.blobs["seeds/prompts.json"])
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		store := newFakeStore()
		store.blobs["seeds/prompts.json"] = []byte("[]")

		if err := uploadSeed(ctx, store, writeSeedFile(t, seedJSON), "seeds/prompts.json", false); err == nil {
			t.Fatal("expected error")
		}
		if err := uploadSeed(ctx, store, writeSeedFile(t, seedJSON), "seeds/prompts.json", true); err != nil {
			t.Fatalf("overwrite: %v", err)
		}
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		store := newFakeStore()

		if err := uploadSeed(ctx, store, writeSeedFile(t, `{"title":"x"}`), "seeds/bad.json", false); err == nil {
			t.Fatal("expected error")
		}
		if len(store.blobs) != 0 {
			t.Error("invalid seed was uploaded")
		}
	})
}

func TestListSeeds(t *testing.T) {
	store := newFakeStore()
	store.blobs["seeds/a.json"] = []byte("[]")
	store.blobs["other/b.json"] = []byte("[]")

	var buf bytes.Buffer
	if err := listSeeds(context.Background(), store, "seeds/", &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "seeds/a.json" {
		t.Errorf("output = %q", got)
	}
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, &prompts.SeedResult{
		Added:   []string{"One"},
		Skipped: []string{"Two"},
		Invalid: []string{""},
	})

	out := buf.String()
	for _, want := range []string{"added: One", "skipped (exists): Two", `skipped (invalid): ""`, "1 added, 1 skipped, 1 invalid"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewInfrastructureSkipsRateLimiter(t *testing.T) {
	enabled := true
	cfg := &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "promptvault",
			User:            "promptvault",
			Password:        "promptvault",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    1,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
	}
	cfg.API.RateLimit.Enabled = &enabled

	infra, err := newInfrastructure(cfg)
	if err != nil {
		t.Fatalf("newInfrastructure() error = %v", err)
	}

	if infra.RateLimiter != nil {
		t.Error("seeder should not create a rate limiter")
	}
	if infra.Database == nil {
		t.Error("Database is nil")
	}
	if !cfg.API.RateLimit.IsEnabled() {
		t.Error("caller config should be left unchanged")
	}
}
