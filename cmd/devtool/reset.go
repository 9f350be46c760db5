package main

import (
	"context"
	"flag"
	"time"

	"github.com/chibox/chibox-server/internal/database/postgres"
	"github.com/chibox/chibox-server/internal/minigame"
	"github.com/chibox/chibox-server/internal/worker"
)

type ResetAttemptsCommand struct{}

func (c *ResetAttemptsCommand) Name() string {
	return "reset-attempts"
}

func (c *ResetAttemptsCommand) Description() string {
	return "Run the daily mini-game reset now"
}

func (c *ResetAttemptsCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	zone := fs.String("zone", minigame.DefaultResetZone, "reset time zone")
	hour := fs.Int("hour", minigame.DefaultResetHour, "reset hour in the zone")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	clock := minigame.NewResetClock(*zone, *hour)
	PrintHeader("Daily reset for day starting " + clock.DayStart(time.Now()).Format(time.RFC3339))

	affected, err := worker.NewDailyResetWorker(postgres.New(pool), nil, clock, nil).RunOnce(ctx)
	if err != nil {
		return err
	}
	PrintSuccess("Reset %d attempt records", affected)
	return nil
}
