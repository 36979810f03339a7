package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"coinflip/communication/client"
	"coinflip/communication/server"
	"coinflip/config"
	"coinflip/engine"
	"coinflip/experiments"
	"coinflip/experiments/metrics"
	"coinflip/game"
	"coinflip/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: coinflip <command> [flags]

commands:
  simulate    evaluate one strategy over many simulated episodes
  compare     evaluate every strategy on the same seeds and write CSV results
  throughput  measure episodes per second for several worker counts
  serve       host game sessions over HTTP
  remote      play one episode against a running server
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "simulate":
		err = runSimulate(cfg, args)
	case "compare":
		err = runCompare(cfg, args)
	case "throughput":
		err = runThroughput(cfg, args)
	case "serve":
		err = runServe(cfg, args)
	case "remote":
		err = runRemote(cfg, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("command failed")
	}
}

// runFlags registers the flags shared by every command that plays simulated episodes.
func runFlags(fs *flag.FlagSet, cfg *config.Config) *experiments.RunConfig {
	rc := &experiments.RunConfig{Options: cfg.GameOptions()}
	fs.IntVar(&rc.Episodes, "episodes", experiments.NumEpisodes, "Number of episodes per strategy")
	fs.IntVar(&rc.Workers, "workers", 0, "Number of worker goroutines (0 = one per CPU)")
	fs.Uint64Var(&rc.Seed, "seed", cfg.RunSeed(), "Seed of the first episode")
	fs.IntVar(&rc.MaxSteps, "max-steps", engine.MaxSteps, "Step cap per episode")
	return rc
}

func runSimulate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	rc := runFlags(fs, cfg)
	fs.StringVar(&rc.Strategy, "strategy", "likelihood", "Strategy: "+strings.Join(player.Names, ", "))
	fs.Parse(args)

	rc.Metrics = true
	report, err := experiments.Run(*rc)
	if err != nil {
		return err
	}

	s := report.Summary
	for _, row := range []struct {
		name string
		stat metrics.Stat
	}{
		{"score", s.Score},
		{"labels", s.Labels},
		{"flips", s.Flips},
		{"flips/label", s.FlipsPerLabel},
		{"reward", s.Reward},
	} {
		fmt.Printf("%-12s mean: %6.2f, std: %6.2f, median: %5.0f, min: %5.0f, max: %5.0f\n",
			row.name, row.stat.Mean, row.stat.Std, row.stat.Median, row.stat.Min, row.stat.Max)
	}
	c := s.Confusion
	fmt.Printf("accuracy: %5.3f, precision: %5.3f, recall: %5.3f, f1: %5.3f\n", c.Accuracy(), c.Precision(), c.Recall(), c.F1())

	log.Info().
		Int("episodes", report.Run.Episodes).
		Int("truncated", report.Run.Truncated).
		Dur("duration", report.Run.Duration).
		Msg("simulation complete")
	return nil
}

func runCompare(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	rc := runFlags(fs, cfg)
	out := fs.String("out", experiments.OutputDir, "Directory for CSV results (empty to skip)")
	fs.Parse(args)

	_, err := experiments.RunComparison(player.Names, *rc, *out)
	return err
}

func runThroughput(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("throughput", flag.ExitOnError)
	rc := runFlags(fs, cfg)
	fs.StringVar(&rc.Strategy, "strategy", "threshold", "Strategy: "+strings.Join(player.Names, ", "))
	counts := fs.String("worker-counts", "1,2,4,8,16", "Comma separated worker counts")
	fs.Parse(args)

	workers := []int{}
	for _, part := range strings.Split(*counts, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid worker count %q", part)
		}
		workers = append(workers, n)
	}

	_, err := experiments.RunThroughput(*rc, workers)
	return err
}

func runServe(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Addr, "Listen address")
	fs.Parse(args)

	var seeds func() uint64
	if cfg.Seed != 0 {
		// Consecutive sessions get consecutive seeds so a whole server run replays.
		seeds = server.SequentialSeeds(cfg.Seed)
	}
	srv, err := server.NewServer(cfg.GameOptions(), seeds)
	if err != nil {
		return err
	}
	return srv.Start(*addr)
}

func runRemote(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("remote", flag.ExitOnError)
	url := fs.String("url", "http://localhost:8080", "Server URL")
	name := fs.String("strategy", "likelihood", "Strategy: "+strings.Join(player.Names, ", "))
	seed := fs.Uint64("seed", 0, "Session seed (0 = chosen by the server)")
	fs.Parse(args)

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	strategy, err := player.ParseStrategy(*name, game.NewSource(uint64(time.Now().UnixNano())), policy)
	if err != nil {
		return err
	}
	remote, err := client.Dial(*url, *seed)
	if err != nil {
		return err
	}
	defer remote.Close()

	m, err := engine.NewLocal(remote, strategy).Run()
	if err != nil {
		return err
	}
	log.Info().
		Str("session", remote.ID()).
		Int("score", m.Score).
		Int("steps", m.Steps).
		Int("labels", len(m.Labels)).
		Msg("remote episode over")
	return nil
}
