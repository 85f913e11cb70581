package main

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/catalog"
	"github.com/chargemap/backend-go/internal/config"
	"github.com/chargemap/backend-go/internal/handler"
	"github.com/chargemap/backend-go/internal/station"
	"github.com/chargemap/backend-go/internal/store"
)

var (
	stationsHandler *handler.StationsHandler
	setupOnce       sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		log.Info().Str("env", cfg.Environment).Msg("Environment")
		log.Debug().Msg("Debug logs enabled")

		ctx := context.Background()
		dynamoClient, err := store.NewDynamoClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create DynamoDB client")
		}

		cacheConfig := config.GetCacheConfig()
		repo := station.NewDynamoRepository(dynamoClient, cfg.StationsTable, cacheConfig)
		stationCatalog := catalog.New(repo, cacheConfig)
		stationsHandler = handler.NewStationsHandler(repo, stationCatalog)
	})
}

func main() {
	lambda.Start(stationsHandler.HandleRequest)
}
