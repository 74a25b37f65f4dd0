package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/useray/internal/buildinfo"
	"github.com/dmitrijs2005/useray/internal/cli"
	"github.com/dmitrijs2005/useray/internal/common"
	"github.com/dmitrijs2005/useray/internal/config"
	"github.com/dmitrijs2005/useray/internal/filex"
	"github.com/dmitrijs2005/useray/internal/logging"
	"github.com/dmitrijs2005/useray/internal/repositories/accesslist"
	"github.com/dmitrijs2005/useray/internal/repositories/metadata"
	"github.com/dmitrijs2005/useray/internal/services"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	if err := run(ctx, cfg); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			fmt.Fprintf(os.Stderr, "Proxy configuration not found, check -p: %v\n", err)
		case errors.Is(err, common.ErrorDecode):
			fmt.Fprintf(os.Stderr, "A data file is corrupt and was left untouched: %v\n", err)
		}
		log.Fatalf("%v", err)
	}

}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	meta := metadata.NewFileRepository(filex.OSFS{}, cfg.DataDir)
	if err := meta.Load(ctx); err != nil {
		return fmt.Errorf("failed to load clients: %w", err)
	}

	access := accesslist.NewFileRepository(filex.OSFS{}, cfg.ProxyConfigPath, cfg.AccessListPath)
	if err := access.Load(ctx); err != nil {
		return fmt.Errorf("failed to load access list: %w", err)
	}

	engine := services.NewSyncEngine(meta, access, logger)
	report, err := engine.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile: %w", err)
	}
	if report.Changed() {
		fmt.Printf("Reconciled: %d adopted, %d withdrawn, %d granted, %d releveled\n",
			len(report.Adopted), len(report.Withdrawn), len(report.Granted), len(report.Releveled))
	}

	app := cli.NewApp(cfg, engine, logger, os.Stdin, os.Stdout, cli.IsInteractive(os.Stdin))
	app.Run(ctx)
	return nil
}
