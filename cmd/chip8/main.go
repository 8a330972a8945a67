// Package main implements the command line entry point of the CHIP-8 emulator.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8"
	"github.com/senojj/emul8/chip8"
	"github.com/senojj/emul8/statsview"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	cfg, err := emul8.ParseFlags(os.Args[0], os.Args[1:])
	logger := emul8.CreateLogger(cfg.Debug, cfg.Quiet)
	if err != nil {
		var usageErr *emul8.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "%s\n\n", usageErr.Error())
			usageErr.ShowUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Fatal(err.Error())
	}

	if cfg.Version {
		fmt.Printf("version: %s\n", buildinfo.Version(version, commit, date))
		return
	}

	rom, err := os.ReadFile(cfg.ROM)
	if err != nil {
		logger.Fatal("Reading rom failed", log.Err(err))
	}

	if cfg.Disasm {
		if err := chip8.Disassemble(os.Stdout, rom); err != nil {
			logger.Fatal("Disassembling failed", log.Err(err))
		}
		return
	}

	if cfg.Statsview {
		if statsview.Available() {
			logger.Info("Stats server launched", log.String("url", statsview.Start(ctx)))
		} else {
			logger.Warn("Stats server is not available in this build, rebuild with -tags statsview")
		}
	}

	e, err := emul8.New(cfg, logger, rom)
	if err != nil {
		logger.Fatal("Creating emulator failed", log.Err(err))
	}

	frontend, err := emul8.NewFrontend(cfg.Frontend, cfg)
	if err != nil {
		logger.Fatal(err.Error())
	}

	logger.Info("Running rom",
		log.String("file", cfg.ROM),
		log.Int("size", len(rom)),
		log.String("frontend", cfg.Frontend),
		log.Int("clock", cfg.Rate))

	if err := frontend.Run(ctx, e); err != nil {
		logger.Fatal("Emulation stopped", log.Err(err))
	}
}
