// Package stream provides a DynamoDB Streams handler that audits changes to
// company records.
package stream

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"

	"github.com/jacentio/companies/company"
	"github.com/jacentio/companies/store"
)

// Kind classifies a change.
type Kind string

// Change kinds, one per DynamoDB stream event name.
const (
	// KindInsert is a new record (INSERT).
	KindInsert Kind = "insert"
	// KindModify is an overwrite of an existing record (MODIFY).
	KindModify Kind = "modify"
	// KindRemove is a deleted record (REMOVE).
	KindRemove Kind = "remove"
)

// Change describes one write to the company table.
type Change struct {
	Kind Kind
	ID   string

	// Before is nil for inserts; After is nil for removes.
	Before *company.View
	After  *company.View

	// Changed lists the record fields whose values differ between images.
	Changed []string
}

// Handler processes DynamoDB stream events for the company table.
type Handler struct {
	logger zerolog.Logger
	sink   func(context.Context, Change)
}

// Option configures a Handler.
type Option func(*Handler)

// WithSink registers a callback invoked for every decoded change.
func WithSink(sink func(context.Context, Change)) Option {
	return func(h *Handler) { h.sink = sink }
}

// NewHandler creates a new stream handler.
func NewHandler(logger zerolog.Logger, opts ...Option) *Handler {
	h := &Handler{logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleChanges logs every company change in the batch.
// This function is designed to be used as an AWS Lambda handler. Records
// without a string id key, and unknown event names, are logged and skipped.
func (h *Handler) HandleChanges(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		change, ok := h.processRecord(record)
		if !ok {
			continue
		}
		if h.sink != nil {
			h.sink(ctx, change)
		}
	}
	return nil
}

// processRecord decodes a single stream record into a Change.
func (h *Handler) processRecord(record events.DynamoDBEventRecord) (Change, bool) {
	var kind Kind
	switch record.EventName {
	case "INSERT":
		kind = KindInsert
	case "MODIFY":
		kind = KindModify
	case "REMOVE":
		kind = KindRemove
	default:
		h.logger.Debug().Str("eventID", record.EventID).Str("eventName", record.EventName).Msg("ignoring stream event")
		return Change{}, false
	}

	id := getStringAttr(record.Change.Keys, "id")
	if id == "" {
		h.logger.Warn().Str("eventID", record.EventID).Msg("stream record without string id key")
		return Change{}, false
	}

	change := Change{Kind: kind, ID: id}
	if kind != KindInsert && len(record.Change.OldImage) > 0 {
		v := company.NewView(&store.Item{Raw: ConvertStreamImage(record.Change.OldImage)})
		change.Before = &v
	}
	if kind != KindRemove && len(record.Change.NewImage) > 0 {
		v := company.NewView(&store.Item{Raw: ConvertStreamImage(record.Change.NewImage)})
		change.After = &v
	}
	change.Changed = changedFields(change.Before, change.After)

	event := h.logger.Info()
	if change.After != nil && (change.After.Company == nil || change.After.Location == nil) {
		event = h.logger.Warn().Bool("partial", true)
	}
	event.
		Str("eventID", record.EventID).
		Str("kind", string(kind)).
		Str("id", id).
		Strs("changed", change.Changed).
		Msg("company change")

	return change, true
}

// changedFields compares the record fields of two images.
func changedFields(before, after *company.View) []string {
	var b, a company.View
	if before != nil {
		b = *before
	}
	if after != nil {
		a = *after
	}

	fields := []struct {
		name   string
		before *string
		after  *string
	}{
		{company.FieldCompany, b.Company, a.Company},
		{company.FieldLocation, b.Location, a.Location},
		{company.FieldURL, b.URL, a.URL},
		{"updated_at", b.UpdatedAt, a.UpdatedAt},
	}

	changed := []string{}
	for _, f := range fields {
		if !equalPtr(f.before, f.after) {
			changed = append(changed, f.name)
		}
	}
	return changed
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}

// ConvertStreamImage converts a DynamoDB stream image to SDK attribute values.
// Scalar, null and boolean attributes are converted; nested documents and
// sets are dropped since company records never carry them.
func ConvertStreamImage(image map[string]events.DynamoDBAttributeValue) map[string]types.AttributeValue {
	result := make(map[string]types.AttributeValue, len(image))
	for k, v := range image {
		switch v.DataType() {
		case events.DataTypeString:
			result[k] = &types.AttributeValueMemberS{Value: v.String()}
		case events.DataTypeNumber:
			result[k] = &types.AttributeValueMemberN{Value: v.Number()}
		case events.DataTypeBinary:
			result[k] = &types.AttributeValueMemberB{Value: v.Binary()}
		case events.DataTypeBoolean:
			result[k] = &types.AttributeValueMemberBOOL{Value: v.Boolean()}
		case events.DataTypeNull:
			result[k] = &types.AttributeValueMemberNULL{Value: true}
		}
	}
	return result
}
