package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jessicarod7/boc-usd-cad/internal/application/service"
	"github.com/jessicarod7/boc-usd-cad/internal/config"
	"github.com/jessicarod7/boc-usd-cad/internal/domain/repository"
	"github.com/jessicarod7/boc-usd-cad/internal/infrastructure/api"
	"github.com/jessicarod7/boc-usd-cad/internal/infrastructure/cli"
	"github.com/jessicarod7/boc-usd-cad/internal/infrastructure/db"
)

func main() {
	os.Exit(run())
}

func run() int {
	appCfg, err := config.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	// Results go to stdout; logs stay on stderr.
	logrus.SetOutput(os.Stderr)
	if level, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(level)
	}

	logger := logrus.WithField("invocation_id", uuid.New().String())

	var cache repository.ObservationCache
	if appCfg.Cache.Enabled {
		if err := os.MkdirAll(appCfg.Cache.Path, 0755); err != nil {
			logger.WithError(err).Error("Failed to create cache directory")
			return 1
		}

		badgerOpts := badger.DefaultOptions(appCfg.Cache.Path).WithLogger(nil)

		badgerDB, err := badger.Open(badgerOpts)
		if err != nil {
			logger.WithError(err).Error("Failed to open observation cache")
			return 1
		}
		defer func() {
			if closeErr := badgerDB.Close(); closeErr != nil {
				logger.WithError(closeErr).Warn("Error closing observation cache")
			}
		}()

		cache = db.NewBadgerObservationStore(badgerDB, time.Duration(appCfg.Cache.TTLHours)*time.Hour)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(appCfg.ValetAPI.TimeoutSeconds) * time.Second,
	}
	valetClient := api.NewValetClient(httpClient, logger)
	valetClient.SetBaseURL(appCfg.ValetAPI.BaseURL)

	rateService := service.NewRateService(valetClient, cache, logger, appCfg.Selection.LookbackDays)
	app := cli.NewApp(rateService, logger, os.Stdout)

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 2
		}
		logger.WithError(err).Error("Query failed")
		return 1
	}

	return 0
}
