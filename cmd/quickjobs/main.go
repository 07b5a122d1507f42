package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cpower013/quickjobs-site-1/internal/auth"
	"github.com/cpower013/quickjobs-site-1/internal/cli"
	"github.com/cpower013/quickjobs-site-1/internal/config"
	"github.com/cpower013/quickjobs-site-1/internal/controller"
	"github.com/cpower013/quickjobs-site-1/internal/flagx"
	"github.com/cpower013/quickjobs-site-1/internal/kvstore"
	"github.com/cpower013/quickjobs-site-1/internal/logging"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"github.com/cpower013/quickjobs-site-1/internal/repositories/applications"
	"github.com/cpower013/quickjobs-site-1/internal/repositories/listings"
	"github.com/cpower013/quickjobs-site-1/internal/services"
	"github.com/cpower013/quickjobs-site-1/internal/storage"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	kv := kvstore.New(backend, logger)
	listingRepo := listings.NewKVRepository(kv, time.Now)

	identity := services.NewIdentityService(kv, auth.NewTokens([]byte(cfg.SecretKey), cfg.SessionTTL, time.Now), logger)
	jobs := services.NewJobService(listingRepo, time.Now, logger)
	apps := services.NewApplicationService(applications.NewKVRepository(kv), listingRepo, time.Now, logger)

	var app *cli.App
	ctrl := controller.New(identity, jobs, apps, controller.Options{
		BaseURL: cfg.BaseURL,
		Logger:  logger,
		OnDeepLink: func(v models.DetailView) {
			app.ShowDetail(v)
		},
	})
	app = cli.NewApp(ctrl, os.Stdin, os.Stdout)

	root := cli.NewRootCommand(app, kv, cfg.DeepLinkDelay)
	root.SetArgs(flagx.StripArgs(os.Args[1:], config.FlagNames()))
	return root.ExecuteContext(ctx)
}
