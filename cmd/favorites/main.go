package main

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/auth"
	"github.com/chargemap/backend-go/internal/cache"
	"github.com/chargemap/backend-go/internal/config"
	"github.com/chargemap/backend-go/internal/favorites"
	"github.com/chargemap/backend-go/internal/handler"
	"github.com/chargemap/backend-go/internal/station"
	"github.com/chargemap/backend-go/internal/store"
	"github.com/chargemap/backend-go/internal/user"
)

var (
	favoritesHandler *handler.FavoritesHandler
	setupOnce        sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		log.Info().Str("env", cfg.Environment).Msg("Environment")

		ctx := context.Background()
		dynamoClient, err := store.NewDynamoClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create DynamoDB client")
		}

		cacheConfig := config.GetCacheConfig()
		stationLRU, err := cache.NewStationLRU(cacheConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create station cache")
		}

		repo := station.NewDynamoRepository(dynamoClient, cfg.StationsTable, cacheConfig)
		ledger := favorites.NewLedger(dynamoClient, cfg.UsersTable)
		resolver := favorites.NewResolver(repo, stationLRU)
		users := user.NewService(dynamoClient, cfg.UsersTable)
		verifier := auth.NewVerifier(cfg.AuthSecret)

		favoritesHandler = handler.NewFavoritesHandler(verifier, users, ledger, resolver)
	})
}

func main() {
	lambda.Start(favoritesHandler.HandleRequest)
}
