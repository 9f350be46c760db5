package main

import (
	"context"

	"github.com/chibox/chibox-server/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, version, redo)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return usageError("migrate <up|down|status|version|redo|up-to|down-to> [version]")
	}

	ctx := context.Background()
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintHeader("goose " + args[0])
	if err := database.RunMigrations(ctx, pool, args[0], args[1:]...); err != nil {
		return err
	}
	PrintSuccess("Migration command %q completed", args[0])
	return nil
}
