package store

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// Key returns the primary key for the record with the given id.
func Key(id string) PK {
	return PK{"id": &types.AttributeValueMemberS{Value: id}}
}

// Item represents a retrieved DynamoDB item with common fields.
type Item struct {
	// Raw is the raw DynamoDB item.
	Raw map[string]types.AttributeValue

	// ID is the primary key value.
	ID string

	// UpdatedAt is the ISO 8601 last update timestamp.
	UpdatedAt string
}

// String returns the string value of attr and whether it was present
// as a string attribute.
func (i *Item) String(attr string) (string, bool) {
	if i == nil {
		return "", false
	}
	v, ok := i.Raw[attr].(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return v.Value, true
}

// Clone returns a shallow copy of the raw attribute map, safe to modify
// without touching the item.
func (i *Item) Clone() map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(i.Raw))
	for k, v := range i.Raw {
		out[k] = v
	}
	return out
}
