package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-task-client/internal/adapter"
	"github.com/MKhiriev/go-task-client/internal/client"
	"github.com/MKhiriev/go-task-client/internal/config"
	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/service"
	"github.com/MKhiriev/go-task-client/internal/store"
	"github.com/MKhiriev/go-task-client/internal/tui"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/jonboulle/clockwork"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo.String())

	log := logger.NewClientLogger("go-task-client")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	notifier := tui.NewSessionNotifier(log)
	authClient, err := adapter.NewAuthClient(cfg.Adapter, storages.Sessions, notifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create http client")
	}
	serverAdapter := adapter.NewHTTPServerAdapter(authClient, log)

	services := service.NewClientServices(serverAdapter, storages.Sessions, clockwork.NewRealClock(), log)

	ui := tui.New(services, notifier, tui.Options{
		PageSize:        cfg.App.PageSize,
		RefreshInterval: cfg.Workers.BoardRefreshInterval,
		BuildInfo:       buildInfo,
	}, log)

	app, err := client.NewApp(services, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		storages.Close()
		os.Exit(1)
	}
}
