// Package storetest provides an in-memory company store for tests.
package storetest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/companies/store"
)

var errMissingID = errors.New("storetest: item has no string id")

// Memory is a concurrency-safe in-memory store keyed by id.
// Set Err to make every call fail with it.
type Memory struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue

	Err error

	// Calls counts invocations per method name.
	Calls map[string]int
	// LastScanLimit records the limit of the most recent Scan.
	LastScanLimit int32
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]map[string]types.AttributeValue),
		Calls: make(map[string]int),
	}
}

func (m *Memory) call(name string) error {
	m.Calls[name]++
	return m.Err
}

// Get implements company.Store.
func (m *Memory) Get(_ context.Context, id string) (*store.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("Get"); err != nil {
		return nil, err
	}
	raw, ok := m.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return toItem(raw), nil
}

// Put implements company.Store.
func (m *Memory) Put(_ context.Context, item map[string]types.AttributeValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("Put"); err != nil {
		return err
	}
	id, _ := item["id"].(*types.AttributeValueMemberS)
	if id == nil {
		return errMissingID
	}
	m.items[id.Value] = copyRaw(item)
	return nil
}

// Delete implements company.Store.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("Delete"); err != nil {
		return err
	}
	delete(m.items, id)
	return nil
}

// QueryByLocation implements company.Store.
func (m *Memory) QueryByLocation(_ context.Context, location string) ([]*store.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("QueryByLocation"); err != nil {
		return nil, err
	}
	out := []*store.Item{}
	for _, id := range m.sortedIDs() {
		raw := m.items[id]
		if v, ok := raw["location"].(*types.AttributeValueMemberS); ok && v.Value == location {
			out = append(out, toItem(raw))
		}
	}
	return out, nil
}

// Scan implements company.Store.
func (m *Memory) Scan(_ context.Context, limit int32) ([]*store.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("Scan"); err != nil {
		return nil, err
	}
	m.LastScanLimit = limit
	out := []*store.Item{}
	for _, id := range m.sortedIDs() {
		if limit > 0 && int32(len(out)) >= limit {
			break
		}
		out = append(out, toItem(m.items[id]))
	}
	return out, nil
}

// Seed stores raw items directly, bypassing validation.
func (m *Memory) Seed(items ...map[string]types.AttributeValue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		if id, ok := item["id"].(*types.AttributeValueMemberS); ok {
			m.items[id.Value] = copyRaw(item)
		}
	}
}

// Raw returns a copy of the stored item for id, or nil.
func (m *Memory) Raw(id string) map[string]types.AttributeValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[id]
	if !ok {
		return nil
	}
	return copyRaw(raw)
}

// Len returns the number of stored items.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) sortedIDs() []string {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func toItem(raw map[string]types.AttributeValue) *store.Item {
	item := &store.Item{Raw: copyRaw(raw)}
	if v, ok := raw["id"].(*types.AttributeValueMemberS); ok {
		item.ID = v.Value
	}
	if v, ok := raw["updated_at"].(*types.AttributeValueMemberS); ok {
		item.UpdatedAt = v.Value
	}
	return item
}

func copyRaw(raw map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out
}

// S is shorthand for a string attribute value.
func S(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}
