package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/infrastructure"
	"github.com/JaimeStill/promptvault/internal/prompts"
)

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "", "Local seed file (JSON array of {title, text, username})")
	flag.StringVar(&opts.blob, "blob", "", "Blob key of a seed file in the configured storage container")
	flag.StringVar(&opts.upload, "upload", "", "Upload -file to this blob key instead of seeding")
	flag.BoolVar(&opts.overwrite, "overwrite", false, "Allow -upload to replace an existing blob")
	flag.BoolVar(&opts.list, "list", false, "List seed blobs in the configured storage container")
	flag.StringVar(&opts.prefix, "prefix", "", "Blob name prefix for -list")
	flag.Parse()

	if err := opts.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Println("usage: seed [-file <path> | -blob <key>] [-upload <key> [-overwrite]] [-list [-prefix p]]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	infra, err := newInfrastructure(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.list:
		err = listSeeds(ctx, infra.Storage, opts.prefix, os.Stdout)
	case opts.upload != "":
		err = uploadSeed(ctx, infra.Storage, opts.file, opts.upload, opts.overwrite)
	default:
		err = seed(ctx, cfg, infra, opts)
	}

	if err != nil {
		log.Fatal(err)
	}
}

// newInfrastructure builds the database and storage systems. The seeder
// serves no requests, so no rate limiter client is created.
func newInfrastructure(cfg *config.Config) (*infrastructure.Infrastructure, error) {
	seederCfg := *cfg
	seederCfg.API.RateLimit.Enabled = nil
	return infrastructure.New(&seederCfg)
}

func seed(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure, opts options) error {
	entries, err := loadEntries(ctx, opts, infra.Storage)
	if err != nil {
		return err
	}

	if err := infra.Database.Start(infra.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	infra.Lifecycle.WaitForStartup()
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	sys := prompts.New(
		prompts.NewRepository(infra.Database.Connection()),
		prompts.NewCodes(cfg.Codes.MaxAttempts, nil),
		infra.Logger,
		cfg.API.MaxBatchSize,
	)

	result, err := sys.Seed(ctx, entries)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	printResult(os.Stdout, result)
	return nil
}
