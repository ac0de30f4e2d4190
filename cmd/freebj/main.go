// Command freebj runs a Monte Carlo blackjack simulation: it plays a large
// number of independent rounds under a fixed rule set, playing strategy,
// and betting strategy, and reports the resulting expected value, variance,
// and outcome distribution as JSON.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/freebj/freebj/internal/liveserver"
	"github.com/freebj/freebj/internal/orchestrator"
	"github.com/freebj/freebj/internal/progress"
	"github.com/freebj/freebj/internal/report"
	"github.com/freebj/freebj/internal/stats"
)

// version is set by ldflags during release builds.
var version = "dev"

// CLI is the root command: a single simulation run, plus the compare
// subcommand for comparing two runs.
type CLI struct {
	Version kong.VersionFlag `short:"V" help:"Show version."`

	RuleFlags
	StrategyFlags
	BettingFlags

	Rounds  string `short:"n" default:"1000000" help:"Number of rounds to simulate (k/M/G suffixes accepted)."`
	Jobs    int    `short:"j" default:"0" help:"Number of parallel workers (0 = one per CPU)."`
	DryRun  bool   `help:"Validate configuration and print a zeroed report without simulating."`
	Verbose bool   `short:"v" help:"Verbose logging."`
	Seed    int64  `default:"0" help:"RNG master seed (0 derives one from the current time)."`

	Config     string  `help:"Load rules/betting/deviations from an HCL config file; CLI flags still override it."`
	TUI        bool    `help:"Force the interactive progress bar even when stderr is not a terminal."`
	Serve      string  `help:"Serve live aggregate statistics over websocket at this address, e.g. :8080."`
	Confidence float64 `default:"0.95" help:"Confidence level for the reported EV interval."`

	Compare CompareCmd `cmd:"" help:"Run two configurations and report their statistical difference."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("freebj"),
		kong.Description("Monte Carlo blackjack simulator."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	if err != nil {
		newLogger(false).Error(err.Error())
		os.Exit(1)
	}
}

func newLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level})
}

// Run executes the root command: a single simulation.
func (cli *CLI) Run() error {
	logger := newLogger(cli.Verbose)

	asm, err := assemble(cli.Config, &cli.RuleFlags, &cli.StrategyFlags, &cli.BettingFlags)
	if err != nil {
		logger.Error("configuration error", "error", err)
		return err
	}

	if cli.DryRun {
		zero := orchestrator.Aggregate{Rounds: 0, Stats: stats.New(0)}
		return printJSON(report.Build(zero, asm.Rules, cli.Confidence))
	}

	rounds, err := parseRounds(cli.Rounds)
	if err != nil {
		logger.Error("configuration error", "error", err)
		return err
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx := context.Background()

	var live *liveserver.Server
	if cli.Serve != "" {
		live = liveserver.New(cli.Serve, logger)
		serveCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := live.ListenAndServe(serveCtx); err != nil {
				logger.Error("live server stopped", "error", err)
			}
		}()
	}

	var reporter progress.Reporter
	if !cli.Verbose {
		reporter = progress.New(os.Stderr, cli.TUI, rounds)
	}

	orchCfg := orchestrator.Config{
		Rounds:            rounds,
		Workers:           cli.Jobs,
		Seed:              seed,
		Rules:             asm.Rules,
		Strategy:          asm.Strategy,
		Betting:           asm.Betting,
		ForceTC:           cli.ForceTC,
		ShoeFile:          asm.ShoeCards,
		StartCards:        asm.StartCards,
		DealerCards:       asm.DealerCards,
		OverrideAction:    asm.OverrideAction,
		SurrenderOverride: asm.SurrenderOverride,
	}

	var onSnapshot func(orchestrator.Aggregate)
	if live != nil {
		onSnapshot = chainSnapshot(onSnapshot, live.Publish)
	}
	if reporter != nil {
		onSnapshot = chainSnapshot(onSnapshot, func(agg orchestrator.Aggregate) {
			if agg.Rounds < rounds {
				reporter.Update(float64(agg.Rounds) / float64(rounds))
			}
		})
	}
	if onSnapshot != nil {
		orchCfg.OnSnapshot = onSnapshot
		orchCfg.SnapshotEvery = snapshotInterval(rounds)
	}

	agg, err := orchestrator.Run(ctx, orchCfg)
	if reporter != nil {
		reporter.Done()
	}
	if err != nil {
		logger.Error("simulation failed", "error", err)
		return err
	}

	return printJSON(report.Build(agg, asm.Rules, cli.Confidence))
}

// chainSnapshot composes two OnSnapshot callbacks, tolerating either being
// nil.
func chainSnapshot(a, b func(orchestrator.Aggregate)) func(orchestrator.Aggregate) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(agg orchestrator.Aggregate) {
		a(agg)
		b(agg)
	}
}

// snapshotInterval picks a per-worker snapshot cadence coarse enough not to
// dominate the run: about 200 updates across the whole run.
func snapshotInterval(totalRounds int) int {
	n := totalRounds / 200
	if n < 1 {
		n = 1
	}
	return n
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
