package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// API is the subset of the DynamoDB client used by the Store.
// *dynamodb.Client satisfies it.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

var _ API = (*dynamodb.Client)(nil)

// Store provides DynamoDB operations on the company table.
type Store struct {
	client API
	config Config
}

// New creates a new Store instance.
func New(client API, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// Config returns the effective (validated) configuration.
func (s *Store) Config() Config {
	return s.config
}

// Get retrieves an item by id, returning ErrNotFound if missing.
func (s *Store) Get(ctx context.Context, id string) (*Item, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.TableName),
		Key:       Key(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	if len(result.Item) == 0 {
		return nil, ErrNotFound
	}

	return s.unmarshalItem(result.Item), nil
}

// Put writes the whole item, replacing any existing item with the same id.
func (s *Store) Put(ctx context.Context, item map[string]types.AttributeValue) error {
	if _, ok := item["id"].(*types.AttributeValueMemberS); !ok {
		return errors.New("put item: missing string id attribute")
	}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.TableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Delete removes the item with the given id. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.config.TableName),
		Key:       Key(id),
	})
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// QueryByLocation returns every item whose location equals the given value.
// Results are read from the location index; order is unspecified.
func (s *Store) QueryByLocation(ctx context.Context, location string) ([]*Item, error) {
	queryInput := &dynamodb.QueryInput{
		TableName:              aws.String(s.config.TableName),
		IndexName:              aws.String(s.config.LocationIndex),
		KeyConditionExpression: aws.String("#location = :location"),
		ExpressionAttributeNames: map[string]string{
			"#location": "location",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":location": &types.AttributeValueMemberS{Value: location},
		},
	}

	// Paginate through all results
	items := []*Item{}
	paginator := dynamodb.NewQueryPaginator(s.client, queryInput)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query location %q: %w", location, err)
		}
		for _, raw := range page.Items {
			items = append(items, s.unmarshalItem(raw))
		}
	}

	return items, nil
}

// Scan returns up to limit items from a single Scan request.
// A limit <= 0 uses the configured ScanLimit. The result is unordered and
// may be incomplete; LastEvaluatedKey is not followed.
func (s *Store) Scan(ctx context.Context, limit int32) ([]*Item, error) {
	if limit <= 0 || limit > maxScanLimit {
		limit = s.config.ScanLimit
	}

	result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.config.TableName),
		Limit:     aws.Int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	items := make([]*Item, 0, len(result.Items))
	for _, raw := range result.Items {
		items = append(items, s.unmarshalItem(raw))
	}
	return items, nil
}

// unmarshalItem converts a DynamoDB item to an Item struct.
func (s *Store) unmarshalItem(raw map[string]types.AttributeValue) *Item {
	item := &Item{Raw: raw}

	if v, ok := raw["id"].(*types.AttributeValueMemberS); ok {
		item.ID = v.Value
	}
	if v, ok := raw["updated_at"].(*types.AttributeValueMemberS); ok {
		item.UpdatedAt = v.Value
	}

	return item
}
