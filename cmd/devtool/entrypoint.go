package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

const (
	migrateMaxRetries = 3
	migrateRetryDelay = 5 * time.Second
)

type EntrypointCommand struct{}

func (c *EntrypointCommand) Name() string {
	return "entrypoint"
}

func (c *EntrypointCommand) Description() string {
	return "Container entrypoint (wait-for-db, migrate, exec)"
}

func (c *EntrypointCommand) Run(args []string) error {
	// without PostgreSQL the server runs on in-memory storage
	if os.Getenv(envDatabaseURL) != "" {
		if err := (&WaitForDBCommand{}).Run(nil); err != nil {
			return fmt.Errorf("wait-for-db failed: %w", err)
		}
		if err := c.migrateWithRetries(); err != nil {
			return err
		}
	}
	return c.execApp(args)
}

func (c *EntrypointCommand) migrateWithRetries() error {
	PrintHeader("Running migrations...")
	migrateCmd := &MigrateCommand{}

	var err error
	for i := 0; i < migrateMaxRetries; i++ {
		err = migrateCmd.Run([]string{"up"})
		if err == nil {
			return nil
		}
		PrintWarning("Migration attempt %d failed: %v", i+1, err)
		if i < migrateMaxRetries-1 {
			PrintInfo("Retrying in %v...", migrateRetryDelay)
			time.Sleep(migrateRetryDelay)
		}
	}
	return fmt.Errorf("migrations failed after %d attempts: %w", migrateMaxRetries, err)
}

func (c *EntrypointCommand) execApp(args []string) error {
	// Handle optional "--" separator
	execArgs := args
	if len(execArgs) > 0 && execArgs[0] == "--" {
		execArgs = execArgs[1:]
	}

	if len(execArgs) == 0 {
		return usageError("entrypoint [--] <command> [args...]")
	}

	PrintHeader("Starting application...")
	cmdPath, err := exec.LookPath(execArgs[0])
	if err != nil {
		return fmt.Errorf("executable not found: %w", err)
	}

	// syscall.Exec replaces the current process
	if err := syscall.Exec(cmdPath, execArgs, os.Environ()); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	return nil
}
