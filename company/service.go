// Package company implements validation and the list/create/update/delete
// operations for company records.
package company

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jacentio/companies/store"
)

// DefaultScanLimit caps an unfiltered List.
const DefaultScanLimit int32 = 200

// Store is the persistence contract the Service depends on.
// *store.Store implements it.
type Store interface {
	Get(ctx context.Context, id string) (*store.Item, error)
	Put(ctx context.Context, item map[string]types.AttributeValue) error
	Delete(ctx context.Context, id string) error
	QueryByLocation(ctx context.Context, location string) ([]*store.Item, error)
	Scan(ctx context.Context, limit int32) ([]*store.Item, error)
}

var _ Store = (*store.Store)(nil)

// Service orchestrates company record operations.
type Service struct {
	store     Store
	now       func() time.Time
	newID     func() string
	scanLimit int32
	logger    zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the record id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithScanLimit overrides the cap applied to unfiltered lists.
func WithScanLimit(limit int32) Option {
	return func(s *Service) {
		if limit > 0 {
			s.scanLimit = limit
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service backed by st.
func NewService(st Store, opts ...Option) *Service {
	s := &Service{
		store:     st,
		now:       time.Now,
		newID:     uuid.NewString,
		scanLimit: DefaultScanLimit,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns records at location, or a capped unordered scan when
// location is blank.
func (s *Service) List(ctx context.Context, location string) ([]View, error) {
	var (
		items []*store.Item
		err   error
	)
	if loc := strings.TrimSpace(location); loc != "" {
		items, err = s.store.QueryByLocation(ctx, loc)
	} else {
		items, err = s.store.Scan(ctx, s.scanLimit)
	}
	if err != nil {
		return nil, unavailable(err)
	}

	out := make([]View, 0, len(items))
	for _, item := range items {
		out = append(out, NewView(item))
	}
	return out, nil
}

// Create validates input and stores a new record.
func (s *Service) Create(ctx context.Context, input any) (Record, error) {
	fields, err := Normalize(input, Full)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:        s.newID(),
		Company:   fields[FieldCompany],
		Location:  fields[FieldLocation],
		UpdatedAt: FormatTimestamp(s.now()),
	}
	if url, ok := fields.Get(FieldURL); ok {
		rec.URL = &url
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return Record{}, fmt.Errorf("marshal record: %w", err)
	}
	if err := s.store.Put(ctx, item); err != nil {
		return Record{}, unavailable(err)
	}

	s.logger.Info().Str("id", rec.ID).Str("location", rec.Location).Msg("company created")
	return rec, nil
}

// Update merges input over the record with the given id.
// Validation happens before the record is read.
func (s *Service) Update(ctx context.Context, id string, input any) (Record, error) {
	fields, err := Normalize(input, Partial)
	if err != nil {
		return Record{}, err
	}

	existing, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, unavailable(err)
	}

	merged := existing.Clone()
	for name, value := range fields {
		merged[name] = &types.AttributeValueMemberS{Value: value}
	}
	merged["id"] = &types.AttributeValueMemberS{Value: id}
	merged["updated_at"] = &types.AttributeValueMemberS{Value: FormatTimestamp(s.now())}

	var rec Record
	if err := attributevalue.UnmarshalMap(merged, &rec); err != nil {
		return Record{}, fmt.Errorf("unmarshal record %s: %w", id, err)
	}

	if err := s.store.Put(ctx, merged); err != nil {
		return Record{}, unavailable(err)
	}

	s.logger.Info().Str("id", id).Int("fields", len(fields)).Msg("company updated")
	return rec, nil
}

// Delete removes the record with the given id. Absent ids succeed.
func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		return "", unavailable(err)
	}
	s.logger.Info().Str("id", id).Msg("company deleted")
	return id, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
