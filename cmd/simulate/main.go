// Package main runs one typhoon power generation fleet simulation.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/mitsuyukiLab/tpg-ship-sim/config"
	"github.com/mitsuyukiLab/tpg-ship-sim/sim"
	"github.com/mitsuyukiLab/tpg-ship-sim/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	outputDir := flag.String("output", "", "Output directory for CSV logs (empty = config value)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	config.MustInit(*configPath)
	cfg := config.Cfg()
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	out, err := telemetry.NewOutputManager(cfg.Output)
	if err != nil {
		log.Fatalf("failed to open output: %v", err)
	}
	defer out.Close()

	if err := out.WriteConfig(cfg); err != nil {
		log.Fatalf("failed to write config: %v", err)
	}

	s, err := sim.New(cfg, out)
	if err != nil {
		log.Fatalf("failed to build simulation: %v", err)
	}

	if err := s.Run(); err != nil {
		log.Fatalf("simulation failed: %v", err)
	}

	s.Summary().Log()
	obj := s.Evaluate()
	obj.Log()

	fmt.Printf("appropriate unit price: %.2f JPY (operating %d years)\n",
		obj.AppropriateUnitPrice, obj.OperatingYears)
	if out != nil {
		fmt.Printf("logs written to %s\n", out.Dir())
	}
}
