package main

import (
	"flag"
	"fmt"
	"os"

	"gtpbench/config"
	"gtpbench/gtp"
	"gtpbench/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "gtpbench: %v\n", err)
		os.Exit(2)
	}
	level, _ := cfg.Level()

	// stdout carries the protocol, so logs must stay on stderr.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("gtpbench failed")
	}
}

func run(cfg config.Config) error {
	collector := metrics.NewDummyCollector()
	if cfg.MetricsDir != "" {
		collector = metrics.NewCollector()
	}

	interpreter := gtp.NewInterpreter(
		gtp.WithBoardSize(cfg.BoardSize),
		gtp.WithKomi(cfg.Komi),
		gtp.WithCollector(collector),
	)

	log.Info().Msgf("serving on stdin with boardsize %d and komi %.1f", cfg.BoardSize, cfg.Komi)
	if err := interpreter.Run(os.Stdin, os.Stdout); err != nil {
		return err
	}

	if cfg.MetricsDir == "" {
		return nil
	}
	report := collector.Complete()
	writer, err := metrics.NewWriter(cfg.MetricsDir)
	if err != nil {
		return fmt.Errorf("failed to create metrics writer: %w", err)
	}
	if err := writer.WriteReport(report); err != nil {
		return fmt.Errorf("failed to store metrics: %w", err)
	}
	log.Info().Msgf("%d commands (%d failed) in %s, report in %s",
		report.Session.Commands, report.Session.Failures, report.Session.Duration, writer.Dir())
	return nil
}
