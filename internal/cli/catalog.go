package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// catalog bundles what every command needs to talk to the books table.
type catalog struct {
	repo      *books.Repository
	validator *validation.Validator
	log       *zap.Logger
}

func openCatalog(ctx context.Context, cfg *config.Config, dbPath string) (*catalog, error) {
	log, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	repo, err := books.NewRepository(ctx, dbPath, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("failed to open catalog %s: %w", dbPath, err)
	}

	return &catalog{
		repo:      repo,
		validator: validation.NewValidator(log),
		log:       log,
	}, nil
}

func (c *catalog) Close() {
	_ = c.log.Sync()
}
