// Package store provides the DynamoDB data access layer for company records.
//
// A company record is a single item in one table, keyed by the string
// attribute "id". A global secondary index on "location" serves equality
// lookups by location. The store itself holds no business rules: it passes
// point reads, whole-item puts, deletes, index queries and bounded scans
// through to DynamoDB.
//
// # Client
//
// The store talks to DynamoDB through the [API] interface, which is
// satisfied by *dynamodb.Client:
//
//	cfg, _ := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-1"))
//	s := store.New(dynamodb.NewFromConfig(cfg), store.DefaultConfig())
//
// # Configuration
//
// Use [DefaultConfig] for the standard layout (table "companies", index
// "LocationIndex", scan cap 200).
//
// # Listing
//
// [Store.Scan] issues exactly one Scan request. DynamoDB returns at most
// Limit items with no ordering and no completeness guarantee, and the store
// does not follow LastEvaluatedKey. Use [Store.QueryByLocation] when the
// complete set for a location is needed.
//
// # Errors
//
//   - [ErrNotFound] - no item with the requested id
package store
