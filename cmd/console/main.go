package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"roomdesk/internal/adapters/observability"
	"roomdesk/internal/app"
	"roomdesk/internal/cli"
	"roomdesk/internal/shared"
	filestore "roomdesk/internal/storage/file"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	store, err := filestore.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("data dir setup failed")
	}
	svc, err := app.NewBookingService(ctx, store, nil, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("booking service init failed")
	}

	cli.New(os.Stdin, os.Stdout, svc).Run(ctx)
}
