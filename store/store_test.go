package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/companies/store"
)

func TestDefaultConfig(t *testing.T) {
	cfg := store.DefaultConfig()

	if cfg.TableName != "companies" {
		t.Errorf("expected TableName 'companies', got %q", cfg.TableName)
	}
	if cfg.LocationIndex != "LocationIndex" {
		t.Errorf("expected LocationIndex 'LocationIndex', got %q", cfg.LocationIndex)
	}
	if cfg.ScanLimit != 200 {
		t.Errorf("expected ScanLimit 200, got %d", cfg.ScanLimit)
	}
}

func TestNewStore_AppliesDefaults(t *testing.T) {
	s := store.New(nil, store.Config{})
	if s == nil {
		t.Fatal("expected non-nil Store")
	}
	if s.Config() != store.DefaultConfig() {
		t.Errorf("expected defaults, got %+v", s.Config())
	}
}

func TestKey(t *testing.T) {
	key := store.Key("abc")
	if len(key) != 1 {
		t.Fatalf("expected single key attribute, got %d", len(key))
	}
	if v, ok := key["id"].(*types.AttributeValueMemberS); !ok || v.Value != "abc" {
		t.Errorf("expected id 'abc', got %#v", key["id"])
	}
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	if err := s.Put(ctx, record("c1", "Acme", "NYC")); err != nil {
		t.Fatalf("put: %v", err)
	}

	item, err := s.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.ID != "c1" {
		t.Errorf("expected ID 'c1', got %q", item.ID)
	}
	if item.UpdatedAt != "2024-01-01T00:00:00Z" {
		t.Errorf("unexpected UpdatedAt %q", item.UpdatedAt)
	}
	if v, ok := item.String("company"); !ok || v != "Acme" {
		t.Errorf("expected company 'Acme', got %q (present=%v)", v, ok)
	}
}

func TestPut_Overwrites(t *testing.T) {
	ctx := context.Background()
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	_ = s.Put(ctx, record("c1", "Acme", "NYC"))
	_ = s.Put(ctx, record("c1", "Acme", "SF"))

	item, err := s.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v, _ := item.String("location"); v != "SF" {
		t.Errorf("expected location 'SF', got %q", v)
	}
}

func TestPut_RequiresID(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())
	err := s.Put(context.Background(), map[string]types.AttributeValue{
		"company": &types.AttributeValueMemberS{Value: "Acme"},
	})
	if err == nil {
		t.Error("expected error for item without id")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_ClientError(t *testing.T) {
	fake := newFakeDynamo()
	fake.err = errBoom
	s := store.New(fake, store.DefaultConfig())

	_, err := s.Get(context.Background(), "c1")
	if !errors.Is(err, errBoom) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
	if errors.Is(err, store.ErrNotFound) {
		t.Error("client error must not be reported as ErrNotFound")
	}
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := store.New(newFakeDynamo(), store.DefaultConfig())
	_ = s.Put(ctx, record("c1", "Acme", "NYC"))

	if err := s.Delete(ctx, "c1"); err != nil {
		t.Fatalf("delete existing: %v", err)
	}
	if err := s.Delete(ctx, "c1"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if _, err := s.Get(ctx, "c1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestQueryByLocation(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	s := store.New(fake, store.DefaultConfig())

	_ = s.Put(ctx, record("c1", "Acme", "NYC"))
	_ = s.Put(ctx, record("c2", "Globex", "SF"))
	_ = s.Put(ctx, record("c3", "Initech", "NYC"))

	items, err := s.QueryByLocation(ctx, "NYC")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, item := range items {
		if v, _ := item.String("location"); v != "NYC" {
			t.Errorf("unexpected location %q", v)
		}
	}

	if got := aws.ToString(fake.lastQuery.IndexName); got != "LocationIndex" {
		t.Errorf("expected IndexName 'LocationIndex', got %q", got)
	}
	if fake.lastQuery.ExpressionAttributeNames["#location"] != "location" {
		t.Error("expected #location placeholder to map to 'location'")
	}
}

func TestQueryByLocation_FollowsPages(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	fake.pageSize = 2
	s := store.New(fake, store.DefaultConfig())

	for i := 0; i < 5; i++ {
		_ = s.Put(ctx, record(fmt.Sprintf("c%d", i), "Acme", "NYC"))
	}

	items, err := s.QueryByLocation(ctx, "NYC")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(items) != 5 {
		t.Errorf("expected 5 items across pages, got %d", len(items))
	}
	if fake.queries != 3 {
		t.Errorf("expected 3 query pages, got %d", fake.queries)
	}
}

func TestQueryByLocation_NoMatches(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	items, err := s.QueryByLocation(context.Background(), "Nowhere")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", items)
	}
}

func TestQueryByLocation_ClientError(t *testing.T) {
	fake := newFakeDynamo()
	fake.err = errBoom
	s := store.New(fake, store.DefaultConfig())

	if _, err := s.QueryByLocation(context.Background(), "NYC"); !errors.Is(err, errBoom) {
		t.Errorf("expected wrapped client error, got %v", err)
	}
}

func TestScan_Bounded(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	s := store.New(fake, store.DefaultConfig())

	for i := 0; i < 10; i++ {
		_ = s.Put(ctx, record(fmt.Sprintf("c%d", i), "Acme", "NYC"))
	}

	items, err := s.Scan(ctx, 3)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 items, got %d", len(items))
	}
	if got := aws.ToInt32(fake.lastScan.Limit); got != 3 {
		t.Errorf("expected Limit 3, got %d", got)
	}
	if fake.lastScan.ExclusiveStartKey != nil {
		t.Error("scan must not continue from a previous page")
	}
}

func TestScan_DefaultLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int32
	}{
		{"zero", 0},
		{"negative", -1},
		{"over max", 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeDynamo()
			s := store.New(fake, store.DefaultConfig())

			if _, err := s.Scan(context.Background(), tt.limit); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if got := aws.ToInt32(fake.lastScan.Limit); got != 200 {
				t.Errorf("expected Limit 200, got %d", got)
			}
		})
	}
}

func TestScan_Empty(t *testing.T) {
	s := store.New(newFakeDynamo(), store.DefaultConfig())

	items, err := s.Scan(context.Background(), 0)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", items)
	}
}

func TestItem_String(t *testing.T) {
	item := &store.Item{Raw: map[string]types.AttributeValue{
		"company": &types.AttributeValueMemberS{Value: "Acme"},
		"count":   &types.AttributeValueMemberN{Value: "3"},
	}}

	if v, ok := item.String("company"); !ok || v != "Acme" {
		t.Errorf("expected 'Acme', got %q (present=%v)", v, ok)
	}
	if _, ok := item.String("count"); ok {
		t.Error("number attribute should not read as string")
	}
	if _, ok := item.String("missing"); ok {
		t.Error("missing attribute should not be present")
	}

	var nilItem *store.Item
	if _, ok := nilItem.String("company"); ok {
		t.Error("nil item should report absent")
	}
}

func TestItem_Clone(t *testing.T) {
	item := &store.Item{Raw: record("c1", "Acme", "NYC")}

	clone := item.Clone()
	clone["company"] = &types.AttributeValueMemberS{Value: "Changed"}

	if v, _ := item.String("company"); v != "Acme" {
		t.Errorf("clone mutation leaked into item: %q", v)
	}
}
