package main

import (
	"context"
	"flag"

	"github.com/chibox/chibox-server/internal/config"
	"github.com/chibox/chibox-server/internal/database/postgres"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Upsert items and cases from the game config into the database"
}

func (c *SeedCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	path := fs.String("config", config.DefaultGameConfigPath, "game config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	games, err := config.LoadGameConfig(*path)
	if err != nil {
		return err
	}
	if len(games.Catalog.Items) == 0 {
		PrintWarning("%s has no catalog section, nothing to seed", *path)
		return nil
	}

	ctx := context.Background()
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintInfo("Seeding %d items and %d cases from %s...",
		len(games.Catalog.Items), len(games.Catalog.Cases), *path)
	if err := games.SeedCatalog(ctx, postgres.New(pool)); err != nil {
		return err
	}

	PrintSuccess("Catalog seeded")
	return nil
}
