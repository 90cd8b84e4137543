package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pokodex/internal/client/cli"
	"github.com/dmitrijs2005/pokodex/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, config.LoadConfig())
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
