// Command devtool bundles operational tasks: migrations, catalog seeding,
// manual daily resets, health probes, dead-letter replay and case
// profitability reports.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := newRegistry()

	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.PrintHelp()
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		PrintError("%s failed: %v", cmd.Name(), err)
		os.Exit(1)
	}
}

func newRegistry() *Registry {
	r := NewRegistry()
	r.Register(&WaitForDBCommand{})
	r.Register(&MigrateCommand{})
	r.Register(&SeedCommand{})
	r.Register(&ResetAttemptsCommand{})
	r.Register(&HealthCheckCommand{})
	r.Register(&ProfitabilityCommand{})
	r.Register(&ReplayEventsCommand{})
	r.Register(&EntrypointCommand{})
	return r
}

// usageError is returned for malformed arguments
func usageError(format string, a ...interface{}) error {
	return fmt.Errorf("usage: "+format, a...)
}
