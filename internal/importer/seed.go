package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/pkg/http/client"
)

// SeedSource loads the seed station list for a bootstrap import
type SeedSource interface {
	Load(ctx context.Context) ([]models.Station, error)
}

// FileSource reads the seed list from a local JSON file
type FileSource struct {
	Path string
}

func (s FileSource) Load(_ context.Context) ([]models.Station, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return parseSeed(data)
}

// HTTPSource fetches the seed list from a URL
type HTTPSource struct {
	Client client.Interface
	URL    string
}

func (s HTTPSource) Load(ctx context.Context) ([]models.Station, error) {
	resp, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching seed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching seed: unexpected status %d", resp.StatusCode)
	}
	return parseSeed(resp.Body)
}

// S3API is the slice of the S3 API the seed source needs
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the seed list from an object in a bucket
type S3Source struct {
	Client S3API
	Bucket string
	Key    string
}

func (s S3Source) Load(ctx context.Context) ([]models.Station, error) {
	result, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting seed object: %w", err)
	}
	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Error closing S3 object body")
		}
	}(result.Body)

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("reading seed object: %w", err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) ([]models.Station, error) {
	var stations []models.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		return nil, fmt.Errorf("decoding seed list: %w", err)
	}
	if len(stations) == 0 {
		return nil, fmt.Errorf("seed list is empty")
	}
	return stations, nil
}
