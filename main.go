package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"tourplan/app/client/googleweather"
	"tourplan/app/config"
	"tourplan/app/server"
	"tourplan/app/service/conversation"
	"tourplan/app/service/session"
	"tourplan/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, googleweather.NewClient)
	do.Provide(di, session.New)
	do.Provide(di, conversation.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if err = do.MustInvoke[*server.Server](di).Run(appCtx); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
