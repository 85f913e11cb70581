package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/config"
	"github.com/chargemap/backend-go/internal/importer"
	"github.com/chargemap/backend-go/internal/station"
	"github.com/chargemap/backend-go/internal/store"
	"github.com/chargemap/backend-go/pkg/http/client"
)

// One-shot bootstrap import of a seed station list. Deliberately not
// idempotent: re-running against a populated table creates duplicates.
func main() {
	var (
		filePath = flag.String("file", "data/seed_stations.json", "path to a seed JSON file")
		seedURL  = flag.String("url", "", "URL of a seed JSON document (overrides -file)")
		s3Bucket = flag.String("s3-bucket", "", "bucket holding the seed object (overrides -file and -url)")
		s3Key    = flag.String("s3-key", "seed_stations.json", "key of the seed object")
	)
	flag.Parse()

	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	ctx := context.Background()
	dynamoClient, err := store.NewDynamoClient(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create DynamoDB client")
	}

	source, err := pickSource(ctx, *filePath, *seedURL, *s3Bucket, *s3Key, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure seed source")
	}

	repo := station.NewDynamoRepository(dynamoClient, cfg.StationsTable, config.GetCacheConfig())
	result, err := importer.New(repo).RunFromSource(ctx, source)
	if err != nil {
		log.Fatal().Err(err).Msg("Import aborted")
	}

	output, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(output))

	if !result.Success {
		os.Exit(1)
	}
}

func pickSource(ctx context.Context, filePath, seedURL, s3Bucket, s3Key string, cfg *config.Config) (importer.SeedSource, error) {
	if s3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		return importer.S3Source{
			Client: s3.NewFromConfig(awsCfg),
			Bucket: s3Bucket,
			Key:    s3Key,
		}, nil
	}

	if seedURL != "" {
		return importer.HTTPSource{
			Client: client.New(client.Options{Timeout: cfg.HTTPTimeout}),
			URL:    seedURL,
		}, nil
	}

	return importer.FileSource{Path: filePath}, nil
}
