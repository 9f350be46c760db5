package config

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/minigame"
	"github.com/chibox/chibox-server/internal/repository"
	"github.com/chibox/chibox-server/internal/subscription"
	"github.com/chibox/chibox-server/internal/upgrade"
	"github.com/chibox/chibox-server/internal/validation"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const gamesSchema = "schemas/games.schema.json"

// GameConfig is the tunable game data read from GAME_CONFIG_PATH
type GameConfig struct {
	Minigames    minigame.Config    `json:"minigames"`
	Subscription subscription.Table `json:"subscription"`
	Upgrade      upgrade.Calculator `json:"upgrade"`
	Catalog      CatalogSeed        `json:"catalog"`
}

// CatalogSeed lists items and cases written to the catalog at startup
type CatalogSeed struct {
	Items []domain.Item `json:"items"`
	Cases []CaseSeed    `json:"cases"`
}

// CaseSeed is a case together with its pool
type CaseSeed struct {
	domain.Case
	Pool []repository.CaseEntry `json:"pool"`
}

// DefaultGameConfig returns the built-in tables with an empty catalog
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Minigames:    minigame.DefaultConfig(),
		Subscription: subscription.DefaultTable(),
		Upgrade:      upgrade.DefaultCalculator(),
	}
}

// LoadGameConfig overlays the file at path onto the defaults. A missing file
// yields the defaults.
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn(LogMsgGameConfigMissing, "path", path)
		return DefaultGameConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGameConfig, path, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGameConfig, path, err)
	}
	slog.Info(LogMsgGameConfigLoaded, "path", path,
		"items", len(cfg.Catalog.Items), "cases", len(cfg.Catalog.Cases))
	return cfg, nil
}

// ParseGameConfig checks data against the embedded schema, decodes it over the
// defaults and validates every section
func ParseGameConfig(data []byte) (*GameConfig, error) {
	if err := validation.NewSchemaValidator(schemaFS).ValidateBytes(data, gamesSchema); err != nil {
		return nil, err
	}
	cfg := DefaultGameConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks each section
func (g *GameConfig) Validate() error {
	if err := g.Minigames.Validate(); err != nil {
		return fmt.Errorf("minigames: %w", err)
	}
	if err := g.Subscription.Validate(); err != nil {
		return fmt.Errorf("subscription: %w", err)
	}
	if err := g.Upgrade.Validate(); err != nil {
		return fmt.Errorf("upgrade: %w", err)
	}
	if err := g.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

// Validate requires unique ids, positive prices and pools that reference known items
func (c CatalogSeed) Validate() error {
	items := make(map[string]bool, len(c.Items))
	for _, it := range c.Items {
		if it.ID == "" {
			return errors.New("item without id")
		}
		if items[it.ID] {
			return fmt.Errorf("duplicate item %q", it.ID)
		}
		if !it.Price.IsPositive() {
			return fmt.Errorf("item %q: price must be positive", it.ID)
		}
		items[it.ID] = true
	}

	cases := make(map[string]bool, len(c.Cases))
	for _, cs := range c.Cases {
		if cs.ID == "" {
			return errors.New("case without id")
		}
		if cases[cs.ID] {
			return fmt.Errorf("duplicate case %q", cs.ID)
		}
		cases[cs.ID] = true
		if cs.Price.IsNegative() {
			return fmt.Errorf("case %q: negative price", cs.ID)
		}
		if len(cs.Pool) == 0 {
			return fmt.Errorf("case %q: empty pool", cs.ID)
		}
		for _, e := range cs.Pool {
			if !items[e.ItemID] {
				return fmt.Errorf("case %q: unknown item %q", cs.ID, e.ItemID)
			}
			if e.Weight < 0 {
				return fmt.Errorf("case %q: negative weight for %q", cs.ID, e.ItemID)
			}
		}
	}
	return nil
}

// SeedCatalog upserts every item, then every case with its pool
func (g *GameConfig) SeedCatalog(ctx context.Context, w repository.CatalogWriter) error {
	for _, it := range g.Catalog.Items {
		if err := w.UpsertItem(ctx, it); err != nil {
			return fmt.Errorf(ErrMsgCatalogSeed, err)
		}
	}
	for _, cs := range g.Catalog.Cases {
		if err := w.UpsertCase(ctx, cs.Case, cs.Pool); err != nil {
			return fmt.Errorf(ErrMsgCatalogSeed, err)
		}
	}
	slog.Info(LogMsgCatalogSeeded, "items", len(g.Catalog.Items), "cases", len(g.Catalog.Cases))
	return nil
}
