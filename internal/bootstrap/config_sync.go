package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chibox/chibox-server/internal/catalog"
	"github.com/chibox/chibox-server/internal/config"
	"github.com/chibox/chibox-server/internal/repository"
)

// SyncCatalog upserts the items and cases from the game config and drops
// whatever the catalog cache held. Rows missing from the file are left alone.
func SyncCatalog(ctx context.Context, cfg *config.Config, games *config.GameConfig, writer repository.CatalogWriter, cache catalog.Cache) error {
	if !cfg.SeedCatalog {
		slog.Info(LogMsgCatalogSkipped)
		return nil
	}

	slog.Info(LogMsgSyncingCatalog,
		"items", len(games.Catalog.Items),
		"cases", len(games.Catalog.Cases))
	if err := games.SeedCatalog(ctx, writer); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSync, err)
	}
	if cache != nil {
		cache.Invalidate(ctx)
	}
	return nil
}
