package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/internal/store"
)

var ErrMissingUID = errors.New("uid is required")

// Service provisions user documents lazily: the document is created on the
// first successful sign-in and never re-created once present. createdAt is
// set exactly once, at creation time.
type Service struct {
	client store.Client
	table  string
	now    func() time.Time
}

func NewService(client store.Client, table string) *Service {
	return &Service{
		client: client,
		table:  table,
		now:    time.Now,
	}
}

// GetOrCreate returns the user document for the identity, creating it with
// an empty favorite set when it does not exist yet. A concurrent first
// sign-in loses the conditional write and falls back to a re-read.
func (s *Service) GetOrCreate(ctx context.Context, uid, email, displayName string) (*models.User, error) {
	if uid == "" {
		return nil, ErrMissingUID
	}

	existing, err := s.get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	fresh := models.User{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   s.now().Unix(),
	}

	item, err := attributevalue.MarshalMap(fresh)
	if err != nil {
		return nil, fmt.Errorf("marshaling user document: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(uid)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			// Another sign-in created the document first; it wins
			return s.get(ctx, uid)
		}
		return nil, fmt.Errorf("creating user document: %w", err)
	}

	log.Info().Str("uid", uid).Msg("Created user document")
	return &fresh, nil
}

func (s *Service) get(ctx context.Context, uid string) (*models.User, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"uid": &types.AttributeValueMemberS{Value: uid},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting user document: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("unmarshaling user document: %w", err)
	}
	return &user, nil
}
