package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/mahmut-akarsu/ECommerceProject/internal/client/cli"
	"github.com/mahmut-akarsu/ECommerceProject/internal/client/config"
	"github.com/mahmut-akarsu/ECommerceProject/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(context.Background())
}
