package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"tinybot/app/client/console"
	"tinybot/app/config"
	"tinybot/app/service/engine"
	"tinybot/app/service/history"
	"tinybot/app/service/intent"
	"tinybot/app/service/matcher"
	"tinybot/app/util/mylog"

	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		slog.Error("Config load failed", "error", err)
		os.Exit(1)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		slog.Error("Logging init failed", "error", err)
		os.Exit(1)
	}

	do.Provide(di, console.NewClient)
	do.Provide(di, intent.New)
	do.Provide(di, matcher.New)
	do.Provide(di, history.New)
	do.Provide(di, engine.New)

	slog.Debug("Service started",
		"intents", cfg.Storage.IntentsPath,
		"history", cfg.Storage.HistoryPath)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		slog.Debug("Interrupted")

		cancel()
	}()

	do.MustInvoke[*engine.Service](di).Run(appCtx)
}
