package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/chibox/chibox-server/internal/config"
	"github.com/chibox/chibox-server/internal/database/postgres"
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/profitability"
	"github.com/chibox/chibox-server/internal/utils"
)

// ProfitabilityReport is what -out writes
type ProfitabilityReport struct {
	CaseID       string                      `json:"case_id,omitempty"`
	Analysis     profitability.Analysis      `json:"analysis"`
	Optimization *profitability.Optimization `json:"optimization,omitempty"`
	Optimized    *profitability.Analysis     `json:"optimized,omitempty"`
}

type ProfitabilityCommand struct{}

func (c *ProfitabilityCommand) Name() string {
	return "profitability"
}

func (c *ProfitabilityCommand) Description() string {
	return "Report expected value and margin of a case pool, optionally tuning weights"
}

func (c *ProfitabilityCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	cfgPath := fs.String("config", config.DefaultGameConfigPath, "game config file holding the catalog")
	caseID := fs.String("case", "", "case id from the game config")
	fromDB := fs.Bool("db", false, "read -case from DATABASE_URL instead of the game config")
	poolPath := fs.String("pool", "", "JSON file with an array of items, used instead of -case")
	price := fs.Float64("price", 0, "case price; defaults to the configured price with -case")
	margin := fs.Float64("margin", profitability.DefaultTargetMargin, "target profit margin")
	optimize := fs.Bool("optimize", false, "tune category weights towards the target margin")
	out := fs.String("out", "", "write the JSON report to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		items     []domain.Item
		casePrice float64
		err       error
	)
	if *fromDB {
		items, casePrice, err = loadPoolFromDB(*caseID)
	} else {
		items, casePrice, err = loadPool(*cfgPath, *caseID, *poolPath)
	}
	if err != nil {
		return err
	}
	if *price > 0 {
		casePrice = *price
	}
	if casePrice <= 0 {
		return usageError("profitability -pool <file> -price <price>")
	}

	report := buildReport(*caseID, items, casePrice, *margin, *optimize)
	printReport(report)

	if *out != "" {
		if err := utils.WriteJSON(*out, report); err != nil {
			return err
		}
		PrintSuccess("Report written to %s", *out)
	}
	return nil
}

func buildReport(caseID string, items []domain.Item, price, margin float64, optimize bool) ProfitabilityReport {
	pool := domain.Candidates(items)
	report := ProfitabilityReport{
		CaseID:   caseID,
		Analysis: profitability.Analyze(pool, price, margin),
	}
	if !optimize {
		return report
	}

	opt := profitability.OptimizeWeights(pool, price*(1-margin))
	report.Optimization = &opt

	tuned := make([]domain.Item, len(items))
	copy(tuned, items)
	for i := range tuned {
		tuned[i].DropWeight = opt.Weights[i]
	}
	after := profitability.Analyze(domain.Candidates(tuned), price, margin)
	report.Optimized = &after
	return report
}

// loadPool reads a case pool either from the game config or from a plain item list
func loadPool(cfgPath, caseID, poolPath string) ([]domain.Item, float64, error) {
	if poolPath != "" {
		var items []domain.Item
		if err := utils.LoadJSON(poolPath, &items); err != nil {
			return nil, 0, err
		}
		if len(items) == 0 {
			return nil, 0, fmt.Errorf("%s holds no items", poolPath)
		}
		return items, 0, nil
	}
	if caseID == "" {
		return nil, 0, usageError("profitability -case <id> | -pool <file>")
	}

	games, err := config.LoadGameConfig(cfgPath)
	if err != nil {
		return nil, 0, err
	}
	return casePool(games.Catalog, caseID)
}

// loadPoolFromDB reads an active case and its weighted pool from PostgreSQL
func loadPoolFromDB(caseID string) ([]domain.Item, float64, error) {
	if caseID == "" {
		return nil, 0, usageError("profitability -db -case <id>")
	}

	ctx := context.Background()
	pool, err := openPool(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer pool.Close()

	store := postgres.New(pool)
	c, err := store.GetCase(ctx, caseID)
	if err != nil {
		return nil, 0, err
	}
	items, err := store.GetCaseItems(ctx, caseID)
	if err != nil {
		return nil, 0, err
	}
	return items, c.Price.InexactFloat64(), nil
}

// casePool resolves a seeded case into items carrying their per-case weights
func casePool(seed config.CatalogSeed, caseID string) ([]domain.Item, float64, error) {
	byID := make(map[string]domain.Item, len(seed.Items))
	for _, it := range seed.Items {
		byID[it.ID] = it
	}
	for _, cs := range seed.Cases {
		if cs.ID != caseID {
			continue
		}
		items := make([]domain.Item, 0, len(cs.Pool))
		for _, e := range cs.Pool {
			it, ok := byID[e.ItemID]
			if !ok {
				return nil, 0, fmt.Errorf("case %s references unknown item %s", caseID, e.ItemID)
			}
			if e.Weight != 0 {
				it.DropWeight = e.Weight
			}
			items = append(items, it)
		}
		return items, cs.Price.InexactFloat64(), nil
	}
	return nil, 0, fmt.Errorf("%w: %s", domain.ErrCaseNotFound, caseID)
}

func printReport(r ProfitabilityReport) {
	a := r.Analysis
	PrintHeader("Case profitability")
	PrintInfo("Price %.2f, expected value %.2f, return rate %.1f%%", a.CasePrice, a.ExpectedValue, a.ReturnRate*100)
	if a.IsOptimal {
		PrintSuccess("%s", a.Recommendation.Message)
	} else {
		PrintWarning("%s", a.Recommendation.Message)
	}

	if r.Optimization != nil {
		o := r.Optimization
		PrintHeader("Weight optimization")
		PrintInfo("Target EV %.2f, initial %.2f, reached %.2f in %d iterations", o.TargetEV, o.InitialEV, o.ExpectedValue, o.Iterations)
		if !o.Converged {
			PrintWarning("Target not reached; weights are the closest found")
		}
		weights, _ := json.MarshalIndent(o.CategoryWeights, "", "  ")
		fmt.Fprintln(os.Stdout, string(weights))
	}
}
