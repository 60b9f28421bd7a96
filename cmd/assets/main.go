package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/todoweb/internal/assetcli"
	"github.com/dmitrijs2005/todoweb/internal/logging"
	"github.com/dmitrijs2005/todoweb/internal/server/config"
	"github.com/dmitrijs2005/todoweb/internal/server/services"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(config.Tool)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}

	svc, err := services.NewAssetService(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := assetcli.Run(ctx, svc, config.CommandArgs(os.Args[1:]), os.Stdout); err != nil {
		if errors.Is(err, assetcli.ErrUsage) {
			log.Printf("%v", err)
			os.Exit(2)
		}
		log.Fatalf("%v", err)
	}

}
