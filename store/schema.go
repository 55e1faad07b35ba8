package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// tableActiveTimeout bounds how long CreateTable waits for the table.
const tableActiveTimeout = 5 * time.Minute

// TableInput returns the CreateTable request for the configured layout:
// hash key "id" and a global secondary index on "location" projecting all
// attributes, with on-demand billing.
func (s *Store) TableInput() *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(s.config.TableName),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("location"), AttributeType: types.ScalarAttributeTypeS},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(s.config.LocationIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("location"), KeyType: types.KeyTypeHash},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
		BillingMode: types.BillingModePayPerRequest,
		StreamSpecification: &types.StreamSpecification{
			StreamEnabled:  aws.Bool(true),
			StreamViewType: types.StreamViewTypeNewAndOldImages,
		},
	}
}

// CreateTable provisions the table and waits until it is active.
// It returns created=false without error when the table already exists.
func (s *Store) CreateTable(ctx context.Context) (created bool, err error) {
	_, err = s.client.CreateTable(ctx, s.TableInput())
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return false, fmt.Errorf("create table %s: %w", s.config.TableName, err)
		}
	} else {
		created = true
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.config.TableName),
	}, tableActiveTimeout); err != nil {
		return created, fmt.Errorf("wait for table %s: %w", s.config.TableName, err)
	}

	return created, nil
}
