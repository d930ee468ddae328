package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/trainingkeeper/internal/app"
	"github.com/dmitrijs2005/trainingkeeper/internal/cli"
	"github.com/dmitrijs2005/trainingkeeper/internal/config"
	"github.com/dmitrijs2005/trainingkeeper/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	err = a.Run(ctx, flagx.Positional(os.Args[1:], config.ValueFlags))
	if cerr := a.Close(); cerr != nil {
		log.Printf("close: %v", cerr)
	}

	if err != nil {
		log.Printf("%v", err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
