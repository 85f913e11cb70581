package station

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/config"
	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/internal/store"
)

// DynamoRepository performs station CRUD against the stations table.
// Documents are keyed by a store-assigned id which is immutable once set.
type DynamoRepository struct {
	client     store.Client
	table      string
	batchSize  int
	maxRetries int
	generateID func() string
}

func NewDynamoRepository(client store.Client, table string, cacheConfig *config.CacheConfig) *DynamoRepository {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}
	return &DynamoRepository{
		client:     client,
		table:      table,
		batchSize:  cacheConfig.BatchGetSize,
		maxRetries: cacheConfig.MaxBatchRetries,
		generateID: uuid.NewString,
	}
}

// ListAll returns every station document. Order is store-defined.
func (r *DynamoRepository) ListAll(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, NewStoreError("listing stations", err)
		}

		var page []models.Station
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, NewStoreError("unmarshaling station list", err)
		}
		stations = append(stations, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	log.Debug().Int("station_count", len(stations)).Msg("Fetched station list")
	return stations, nil
}

// ListByIDs performs a batched lookup. Input ids are deduplicated and
// chunked at the store's batch ceiling; returned order is not guaranteed
// to match input order. An empty input returns an empty slice without
// touching the store.
func (r *DynamoRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Station, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return []models.Station{}, nil
	}

	stations := make([]models.Station, 0, len(unique))
	for start := 0; start < len(unique); start += r.batchSize {
		end := start + r.batchSize
		if end > len(unique) {
			end = len(unique)
		}

		chunk, err := r.batchGet(ctx, unique[start:end])
		if err != nil {
			return nil, err
		}
		stations = append(stations, chunk...)
	}

	return stations, nil
}

func (r *DynamoRepository) batchGet(ctx context.Context, ids []string) ([]models.Station, error) {
	keys := make([]map[string]types.AttributeValue, len(ids))
	for i, id := range ids {
		keys[i] = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		}
	}

	var stations []models.Station
	for retry := 0; len(keys) > 0; retry++ {
		result, err := r.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				r.table: {Keys: keys},
			},
		})
		if err != nil {
			return nil, NewStoreError("batch getting stations", err)
		}

		var page []models.Station
		if err := attributevalue.UnmarshalListOfMaps(result.Responses[r.table], &page); err != nil {
			return nil, NewStoreError("unmarshaling batched stations", err)
		}
		stations = append(stations, page...)

		unprocessed := result.UnprocessedKeys[r.table].Keys
		if len(unprocessed) == 0 {
			break
		}
		if retry >= r.maxRetries {
			return nil, NewStoreError("batch getting stations",
				fmt.Errorf("unprocessed keys remain after %d retries", r.maxRetries))
		}
		// Exponential backoff before retrying the leftover keys
		time.Sleep(time.Duration(1<<retry) * 100 * time.Millisecond)
		keys = unprocessed
	}

	return stations, nil
}

// Get returns a single station, or nil without error when the id is absent.
func (r *DynamoRepository) Get(ctx context.Context, id string) (*models.Station, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, NewStoreError("getting station", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var station models.Station
	if err := attributevalue.UnmarshalMap(result.Item, &station); err != nil {
		return nil, NewStoreError("unmarshaling station", err)
	}
	return &station, nil
}

// Create assigns a fresh id, persists the document and returns the persisted
// record via a post-write read-back so store-side defaults are reflected.
// Any id on the draft is discarded.
func (r *DynamoRepository) Create(ctx context.Context, draft models.Station) (*models.Station, error) {
	draft.ID = r.generateID()
	draft.Normalize()

	item, err := attributevalue.MarshalMap(draft)
	if err != nil {
		return nil, NewStoreError("marshaling station", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return nil, NewStoreError("creating station", err)
	}

	created, err := r.Get(ctx, draft.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, NewStoreError("creating station", errors.New("station missing after write"))
	}

	log.Debug().Str("station_id", created.ID).Str("name", created.Name).Msg("Created station")
	return created, nil
}

// Update applies a partial patch to an existing station. Untouched fields
// are left as they are; the id itself is never part of the payload. An
// optional field patched to the empty string is removed from the document.
func (r *DynamoRepository) Update(ctx context.Context, id string, patch Patch) error {
	if patch.IsEmpty() {
		return nil
	}

	expr, err := buildUpdateExpression(patch)
	if err != nil {
		return NewStoreError("marshaling station patch", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:         aws.String(expr.update),
		ExpressionAttributeNames: expr.names,
		ConditionExpression:      aws.String("attribute_exists(id)"),
	}
	if len(expr.values) > 0 {
		input.ExpressionAttributeValues = expr.values
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		return NewStoreError("updating station", err)
	}

	log.Debug().Str("station_id", id).Msg("Updated station")
	return nil
}

// Delete removes a station permanently. Deleting an already-absent id is
// not an error; the caller cannot tell the two apart.
func (r *DynamoRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	}); err != nil {
		return NewStoreError("deleting station", err)
	}

	log.Debug().Str("station_id", id).Msg("Deleted station")
	return nil
}

type updateExpression struct {
	update string
	names  map[string]string
	values map[string]types.AttributeValue
}

// buildUpdateExpression turns a patch into SET/REMOVE clauses. Attribute
// names are aliased throughout since several field names collide with
// DynamoDB reserved words.
func buildUpdateExpression(patch Patch) (*updateExpression, error) {
	names := make(map[string]string)
	values := make(map[string]types.AttributeValue)
	assignments := make(map[string]interface{})
	var removals []string

	setField := func(field string, value interface{}) {
		assignments[field] = value
	}
	setOptional := func(field string, value *string) {
		// Empty string means "clear the field": normalized to absence
		if *value == "" {
			removals = append(removals, field)
			return
		}
		assignments[field] = *value
	}

	if patch.Name != nil {
		setField("name", *patch.Name)
	}
	if patch.Address != nil {
		setOptional("address", patch.Address)
	}
	if patch.Latitude != nil {
		setField("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		setField("longitude", *patch.Longitude)
	}
	if patch.Type != nil {
		setField("type", string(*patch.Type))
	}
	if patch.Ports != nil {
		setField("ports", patch.Ports)
	}
	if patch.Operator != nil {
		setOptional("operator", patch.Operator)
	}
	if patch.OpeningHours != nil {
		setOptional("openingHours", patch.OpeningHours)
	}

	fields := make([]string, 0, len(assignments))
	for field := range assignments {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	sort.Strings(removals)

	expr := ""
	for i, field := range fields {
		alias := fmt.Sprintf("#f%d", i)
		placeholder := fmt.Sprintf(":v%d", i)
		names[alias] = field

		av, err := attributevalue.Marshal(assignments[field])
		if err != nil {
			return nil, fmt.Errorf("marshaling field %s: %w", field, err)
		}
		values[placeholder] = av

		if i == 0 {
			expr = "SET "
		} else {
			expr += ", "
		}
		expr += alias + " = " + placeholder
	}

	for i, field := range removals {
		alias := fmt.Sprintf("#r%d", i)
		names[alias] = field
		if i == 0 {
			if expr != "" {
				expr += " "
			}
			expr += "REMOVE "
		} else {
			expr += ", "
		}
		expr += alias
	}

	return &updateExpression{update: expr, names: names, values: values}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
