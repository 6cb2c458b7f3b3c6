package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

type options struct {
	file      string
	blob      string
	upload    string
	overwrite bool
	list      bool
	prefix    string
}

func (o options) validate() error {
	switch {
	case o.list:
		return nil
	case o.upload != "":
		if o.file == "" {
			return errors.New("-upload requires -file")
		}
		return nil
	case o.file != "" && o.blob != "":
		return errors.New("use either -file or -blob, not both")
	case o.file == "" && o.blob == "":
		return errors.New("one of -file or -blob is required")
	}
	return nil
}

// loadEntries decodes seed entries from the local file or blob named in opts.
func loadEntries(ctx context.Context, opts options, store storage.Store) ([]prompts.SeedEntry, error) {
	var r io.ReadCloser

	if opts.blob != "" {
		if store == nil {
			return nil, fmt.Errorf("-blob: %w", storage.ErrNotConfigured)
		}
		body, err := store.Download(ctx, opts.blob)
		if err != nil {
			return nil, fmt.Errorf("download seed %s: %w", opts.blob, err)
		}
		r = body
	} else {
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, fmt.Errorf("open seed file: %w", err)
		}
		r = f
	}
	defer r.Close()

	return prompts.DecodeSeed(r)
}

// uploadSeed validates a local seed file and publishes it to key.
func uploadSeed(ctx context.Context, store storage.Store, file, key string, overwrite bool) error {
	if store == nil {
		return fmt.Errorf("-upload: %w", storage.ErrNotConfigured)
	}

	if !overwrite {
		exists, err := store.Exists(ctx, key)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("blob %s already exists (use -overwrite)", key)
		}
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	if _, err := prompts.DecodeSeed(f); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind seed file: %w", err)
	}

	return store.Upload(ctx, key, f, "application/json")
}

func listSeeds(ctx context.Context, store storage.Store, prefix string, w io.Writer) error {
	if store == nil {
		return fmt.Errorf("-list: %w", storage.ErrNotConfigured)
	}

	names, err := store.List(ctx, prefix)
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

func printResult(w io.Writer, result *prompts.SeedResult) {
	for _, title := range result.Added {
		fmt.Fprintf(w, "added: %s\n", title)
	}
	for _, title := range result.Skipped {
		fmt.Fprintf(w, "skipped (exists): %s\n", title)
	}
	for _, title := range result.Invalid {
		fmt.Fprintf(w, "skipped (invalid): %q\n", title)
	}
	fmt.Fprintf(w, "%d added, %d skipped, %d invalid\n",
		len(result.Added), len(result.Skipped), len(result.Invalid))
}
