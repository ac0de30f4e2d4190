package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/freebj/freebj/internal/confidence"
	"github.com/freebj/freebj/internal/orchestrator"
	"github.com/freebj/freebj/internal/report"
)

// CompareCmd runs two full configurations, A and B, back to back and
// reports whether their expected values differ significantly. The rule,
// strategy and betting flags and --config are duplicated with an a- or
// b- prefix via kong's embed+prefix mechanism, so the two sides can be
// configured completely independently.
type CompareCmd struct {
	A struct {
		RuleFlags
		StrategyFlags
		BettingFlags
		Config string `help:"HCL config file for side A."`
	} `embed:"" prefix:"a-"`

	B struct {
		RuleFlags
		StrategyFlags
		BettingFlags
		Config string `help:"HCL config file for side B."`
	} `embed:"" prefix:"b-"`

	Rounds  string  `short:"n" default:"1000000" help:"Number of rounds to simulate per side."`
	Jobs    int     `short:"j" default:"0" help:"Number of parallel workers per side (0 = one per CPU)."`
	Seed    int64   `default:"0" help:"RNG master seed shared by both sides (0 derives one from the current time)."`
	Alpha   float64 `default:"0.05" help:"Significance level for the comparison's Welch's t-test."`
	Verbose bool    `short:"v" help:"Verbose logging."`
}

// Run executes both sides and prints the comparison report.
func (c *CompareCmd) Run() error {
	logger := newLogger(c.Verbose)
	level := zerolog.InfoLevel
	if c.Verbose {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(os.Stderr).Level(level).With().Timestamp().Str("cmd", "compare").Logger()

	rounds, err := parseRounds(c.Rounds)
	if err != nil {
		logger.Error("configuration error", "error", err)
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx := context.Background()

	zlog.Info().Msg("running side A")
	reportA, aggA, err := c.runSide(ctx, "A", c.A.Config, &c.A.RuleFlags, &c.A.StrategyFlags, &c.A.BettingFlags, rounds, seed)
	if err != nil {
		logger.Error("side A failed", "error", err)
		return err
	}

	zlog.Info().Msg("running side B")
	reportB, aggB, err := c.runSide(ctx, "B", c.B.Config, &c.B.RuleFlags, &c.B.StrategyFlags, &c.B.BettingFlags, rounds, seed)
	if err != nil {
		logger.Error("side B failed", "error", err)
		return err
	}

	cmp := confidence.Compare(
		aggA.Stats.Running.Mean(), aggA.Stats.Running.Stddev(), aggA.Stats.Running.Count(),
		aggB.Stats.Running.Mean(), aggB.Stats.Running.Stddev(), aggB.Stats.Running.Count(),
		c.Alpha,
	)
	zlog.Info().
		Float64("p_value", cmp.PValue).
		Float64("cohens_d", cmp.CohensD).
		Bool("significant", cmp.Significant).
		Msg("comparison complete")

	return printJSON(report.BuildComparison(reportA, reportB, cmp))
}

func (c *CompareCmd) runSide(ctx context.Context, label, configFile string, rf *RuleFlags, sf *StrategyFlags, bf *BettingFlags, rounds int, seed int64) (report.Report, orchestrator.Aggregate, error) {
	asm, err := assemble(configFile, rf, sf, bf)
	if err != nil {
		return report.Report{}, orchestrator.Aggregate{}, fmt.Errorf("side %s: %w", label, err)
	}

	agg, err := orchestrator.Run(ctx, orchestrator.Config{
		Rounds:            rounds,
		Workers:           c.Jobs,
		Seed:              seed,
		Rules:             asm.Rules,
		Strategy:          asm.Strategy,
		Betting:           asm.Betting,
		ForceTC:           sf.ForceTC,
		ShoeFile:          asm.ShoeCards,
		StartCards:        asm.StartCards,
		DealerCards:       asm.DealerCards,
		OverrideAction:    asm.OverrideAction,
		SurrenderOverride: asm.SurrenderOverride,
	})
	if err != nil {
		return report.Report{}, orchestrator.Aggregate{}, fmt.Errorf("side %s: %w", label, err)
	}

	return report.Build(agg, asm.Rules, 0.95), agg, nil
}
