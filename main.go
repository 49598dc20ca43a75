package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"visastay/internal/app"
	"visastay/internal/cli"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("visastay failed")
	}
}
