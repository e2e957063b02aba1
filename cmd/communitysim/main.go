// Command communitysim runs a discrete-event community simulation from a
// JSON economy configuration and reports a short summary when it halts.
// Entry shape (flag parsing → logger setup → construct → run → report)
// follows the teacher's cmd/worldsim/main.go, stripped of its world-map,
// database, and weather wiring — none of which spec.md's core needs.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"

	"github.com/talgya/hearthbound/internal/config"
	"github.com/talgya/hearthbound/internal/sim"
)

func main() {
	seed := flag.Int64("seed", 42, "deterministic PRNG seed")
	configPath := flag.String("config", "community.json", "path to the JSON economy configuration")
	horizonYears := flag.Float64("years", 300, "simulated horizon, in years")
	flag.Parse()

	logger := newLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	s := sim.New(*seed, cfg.ToEconomyRules(), cfg.Consumption)
	criticalGoods := make([]string, 0, len(cfg.Consumption))
	for good := range cfg.Consumption {
		criticalGoods = append(criticalGoods, good)
	}
	sim.Init(s, criticalGoods)

	logger.Info("simulation starting",
		"run_id", s.RunID.String(),
		"seed", *seed,
		"horizon_years", *horizonYears,
	)

	horizonDays := *horizonYears * 365.0
	if err := s.Run(horizonDays); err != nil {
		logger.Error("simulation halted on event execution failure", "error", err, "time", s.Now)
		os.Exit(1)
	}

	report(logger, s)
}

func newLogger() *slog.Logger {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(handler)
}

func report(logger *slog.Logger, s *sim.Simulation) {
	day := time.Unix(0, 0).UTC().AddDate(0, 0, int(s.Now))
	calendarDay := strftime.Format("%Y-%m-%d", day)

	fmt.Printf("simulation halted at %s (day %s)\n", humanize.FormatFloat("#,###.##", s.Now), calendarDay)
	fmt.Printf("alive population: %s (male %s, female %s)\n",
		humanize.Comma(int64(s.Agents.AliveCount())),
		humanize.Comma(int64(s.Agents.AliveMaleCount())),
		humanize.Comma(int64(s.Agents.AliveFemaleCount())),
	)
	for good, gap := range s.Economy.MarketGaps {
		fmt.Printf("market gap %s: %s\n", good, humanize.FormatFloat("#,###.##", gap))
	}
}
