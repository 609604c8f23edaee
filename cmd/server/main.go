package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/voxelcast/voxelcast/internal/core/observability/log"
	"github.com/voxelcast/voxelcast/internal/core/world"
	"github.com/voxelcast/voxelcast/internal/server"
)

type appConfig struct {
	World  world.Config  `yaml:"world"`
	Server server.Config `yaml:"server"`
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	lg := log.New(log.LevelInfo)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		lg.Fatal("failed to load config", log.String("path", *configPath), log.Error(err))
	}

	w, err := cfg.World.Build(lg)
	if err != nil {
		lg.Fatal("failed to build world", log.Error(err))
	}

	srv, err := server.NewQueryServer(cfg.Server, w, lg)
	if err != nil {
		lg.Fatal("failed to create query server", log.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	if err := srv.Start(ctx); err != nil {
		lg.Fatal("failed to start query server", log.Error(err))
	}

	<-stopCh
	cancel()
	if err := srv.Stop(context.Background()); err != nil {
		lg.Error("failed to stop query server", log.Error(err))
	}
}

func loadConfig(path string) (*appConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg appConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
