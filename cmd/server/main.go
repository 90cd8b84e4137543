package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/pokodex/internal/server"
	"github.com/dmitrijs2005/pokodex/internal/server/config"
)

func main() {
	ctx := context.Background()

	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		log.Fatal(err)
	}

	app.Run(ctx)
}
