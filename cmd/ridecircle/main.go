package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ridecircle/ridecircle_client/config"
	"github.com/ridecircle/ridecircle_client/internal/app"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

func main() {
	cfg := loadConfig()

	a, closer, err := app.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, a, os.Stdout, os.Args[1:])
	stop()
	closer.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", service.ErrorMessage(err))
		os.Exit(1)
	}
}

// loadConfig 没有配置文件时使用默认配置，环境变量照常生效
func loadConfig() *config.Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	load := func() (*config.Config, error) { return config.Load(path) }
	if _, err := os.Stat(path); err != nil {
		load = config.Default
	}
	cfg, err := load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
