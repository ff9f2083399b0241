package main

import (
	"flag"
	"fmt"
	"os"

	"racer/internal/config"
	"racer/internal/game"
	"racer/internal/log"
)

var (
	configFlag = flag.String("config", "", "YAML config file (overrides "+config.EnvConfig+")")
	trackFlag  = flag.String("track", "", "track name (overrides "+config.EnvTrack+")")
)

func main() {
	flag.Parse()

	// Flags win over the environment.
	getenv := func(key string) string {
		switch {
		case key == config.EnvConfig && *configFlag != "":
			return *configFlag
		case key == config.EnvTrack && *trackFlag != "":
			return *trackFlag
		}
		return os.Getenv(key)
	}

	cfg, err := config.Resolve(getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "racer: %v\n", err)
		os.Exit(1)
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "racer: %v\n", err)
		os.Exit(1)
	}
	logger, err := log.New(level, cfg.Log.Encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "racer: logger: %v\n", err)
		os.Exit(1)
	}

	if err := game.Run(cfg, logger); err != nil {
		logger.Error("racer stopped", log.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}
