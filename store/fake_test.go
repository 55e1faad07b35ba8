package store_test

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory stand-in for the DynamoDB client.
type fakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	order []string

	// pageSize splits Query results into pages when > 0.
	pageSize int

	err       error
	tableErr  error
	lastScan  *dynamodb.ScanInput
	lastQuery *dynamodb.QueryInput
	queries   int
	describes int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func idOf(key map[string]types.AttributeValue) string {
	if v, ok := key["id"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[idOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id := idOf(in.Item)
	if _, exists := f.items[id]; !exists {
		f.order = append(f.order, id)
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id := idOf(in.Key)
	delete(f.items, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = in
	f.queries++
	if f.err != nil {
		return nil, f.err
	}

	want, _ := in.ExpressionAttributeValues[":location"].(*types.AttributeValueMemberS)
	var matched []map[string]types.AttributeValue
	for _, id := range f.order {
		item := f.items[id]
		if loc, ok := item["location"].(*types.AttributeValueMemberS); ok && want != nil && loc.Value == want.Value {
			matched = append(matched, item)
		}
	}

	start := 0
	if in.ExclusiveStartKey != nil {
		startID := idOf(in.ExclusiveStartKey)
		for i, item := range matched {
			if idOf(item) == startID {
				start = i + 1
				break
			}
		}
	}
	matched = matched[start:]

	out := &dynamodb.QueryOutput{Items: matched}
	if f.pageSize > 0 && len(matched) > f.pageSize {
		out.Items = matched[:f.pageSize]
		last := out.Items[len(out.Items)-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{"id": last["id"], "location": last["location"]}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastScan = in
	if f.err != nil {
		return nil, f.err
	}

	out := &dynamodb.ScanOutput{}
	for _, id := range f.order {
		if in.Limit != nil && int32(len(out.Items)) >= *in.Limit {
			out.LastEvaluatedKey = map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}}
			break
		}
		out.Items = append(out.Items, f.items[id])
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (f *fakeDynamo) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	if f.tableErr != nil {
		return nil, f.tableErr
	}
	return &dynamodb.CreateTableOutput{
		TableDescription: &types.TableDescription{TableName: in.TableName, TableStatus: types.TableStatusCreating},
	}, nil
}

func (f *fakeDynamo) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	f.mu.Lock()
	f.describes++
	f.mu.Unlock()
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{TableName: in.TableName, TableStatus: types.TableStatusActive},
	}, nil
}

var errBoom = errors.New("boom")

func record(id, company, location string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":         &types.AttributeValueMemberS{Value: id},
		"company":    &types.AttributeValueMemberS{Value: company},
		"location":   &types.AttributeValueMemberS{Value: location},
		"updated_at": &types.AttributeValueMemberS{Value: "2024-01-01T00:00:00Z"},
	}
}
