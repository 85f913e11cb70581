package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/internal/store"
)

var ErrMissingUserID = errors.New("user id is required")

// Ledger manages the per-user favorite station id set, stored as a string
// set on the user document. The set container makes add a union and remove
// a difference, so both are idempotent at the store itself.
type Ledger struct {
	client store.Client
	table  string
}

func NewLedger(client store.Client, table string) *Ledger {
	return &Ledger{
		client: client,
		table:  table,
	}
}

// Add puts a station id into the user's favorite set. Adding an id that is
// already present changes nothing observable.
func (l *Ledger) Add(ctx context.Context, userID, stationID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	if err := l.updateSet(ctx, userID, "ADD favoriteStationIds :ids", stationID); err != nil {
		return fmt.Errorf("adding favorite: %w", err)
	}

	log.Debug().Str("user_id", userID).Str("station_id", stationID).Msg("Added favorite")
	return nil
}

// Remove takes a station id out of the user's favorite set. Removing an
// absent id is a no-op.
func (l *Ledger) Remove(ctx context.Context, userID, stationID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	if err := l.updateSet(ctx, userID, "DELETE favoriteStationIds :ids", stationID); err != nil {
		return fmt.Errorf("removing favorite: %w", err)
	}

	log.Debug().Str("user_id", userID).Str("station_id", stationID).Msg("Removed favorite")
	return nil
}

// List returns the user's current favorite ids. An absent user document
// yields an empty list rather than an error, so the UI stays usable for
// accounts that have not been provisioned yet.
func (l *Ledger) List(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return []string{}, nil
	}

	result, err := l.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(l.table),
		Key: map[string]types.AttributeValue{
			"uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	if result.Item == nil {
		return []string{}, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("unmarshaling user document: %w", err)
	}
	if user.FavoriteStationIDs == nil {
		return []string{}, nil
	}
	return user.FavoriteStationIDs, nil
}

func (l *Ledger) updateSet(ctx context.Context, userID, expression, stationID string) error {
	_, err := l.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(l.table),
		Key: map[string]types.AttributeValue{
			"uid": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression: aws.String(expression),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ids": &types.AttributeValueMemberSS{Value: []string{stationID}},
		},
		ConditionExpression: aws.String("attribute_exists(uid)"),
	})
	return err
}
