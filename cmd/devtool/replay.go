package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/chibox/chibox-server/internal/event"
)

const (
	defaultDeadLetterPath = "logs/event_deadletter.jsonl"
	replayClientName      = "chibox-devtool"
)

type ReplayEventsCommand struct{}

func (c *ReplayEventsCommand) Name() string {
	return "replay-events"
}

func (c *ReplayEventsCommand) Description() string {
	return "Re-publish dead-lettered events to NATS and trim the file"
}

func (c *ReplayEventsCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	path := fs.String("file", envOr("EVENT_DEAD_LETTER_PATH", defaultDeadLetterPath), "dead-letter file")
	url := fs.String("nats", os.Getenv("NATS_URL"), "NATS server URL")
	prefix := fs.String("prefix", envOr("NATS_SUBJECT_PREFIX", event.DefaultSubjectPrefix), "subject prefix")
	dryRun := fs.Bool("dry-run", false, "list entries without publishing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := loadDeadLetters(*path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		PrintSuccess("%s is empty, nothing to replay", *path)
		return nil
	}

	if *dryRun {
		PrintHeader("Dead-lettered events")
		for _, e := range entries {
			PrintInfo("%s  %-22s attempts=%d  %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Event.Type, e.Attempts, e.LastError)
		}
		return nil
	}

	if *url == "" {
		return usageError("replay-events -nats <url> (or set NATS_URL)")
	}
	conn, err := event.Connect(*url, replayClientName)
	if err != nil {
		return err
	}
	bus := event.NewNATSBus(conn, *prefix)
	defer bus.Close()

	PrintInfo("Replaying %d events to %s...", len(entries), *url)
	sent, replayErr := event.Replay(context.Background(), bus, entries)
	if err := writeDeadLetters(*path, entries[sent:]); err != nil {
		return err
	}
	if replayErr != nil {
		PrintWarning("%d of %d replayed, %d kept in %s", sent, len(entries), len(entries)-sent, *path)
		return replayErr
	}
	PrintSuccess("Replayed %d events", sent)
	return nil
}

func loadDeadLetters(path string) ([]event.DeadLetterEntry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return event.ReadDeadLetters(f)
}

// writeDeadLetters replaces path with the given entries through a rename
func writeDeadLetters(path string, entries []event.DeadLetterEntry) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
