// Package food exposes the food items detected by the camera pipeline.
// Each detection run appends one record under Path; only the latest
// record is current.
package food

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"meal-scheduler/internal/realtime"
	"meal-scheduler/internal/shared"
)

// Path is the store path holding detection snapshots.
const Path = "ai_responses"

var (
	// ErrItemNotFound is returned when deleting an item absent from the latest snapshot.
	ErrItemNotFound = errors.New("food item not found")
	// ErrInvalidItem is returned when pushing an item without id or name.
	ErrInvalidItem = errors.New("invalid food item")
)

// Item is a single detected food item.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Calorie  float64 `json:"calorie"`
}

// DefaultItems is reported when the latest detection has no items.
var DefaultItems = []Item{{ID: "1", Name: "Chicken", Quantity: 1, Calorie: 1000}}

// Store is the subset of the record store the feed needs.
type Store interface {
	Read(ctx context.Context, path string) (realtime.Snapshot, error)
	Append(ctx context.Context, path string, fields realtime.Fields) (string, error)
	Set(ctx context.Context, path, id string, fields realtime.Fields) error
}

// Feed reads and edits detection snapshots.
type Feed struct {
	store Store
}

// NewFeed creates a new Feed.
func NewFeed(store Store) *Feed {
	return &Feed{store: store}
}

// Latest returns the items of the most recent detection, ordered by id.
// It returns nil when nothing was ever detected and DefaultItems when the
// latest detection is empty.
func (f *Feed) Latest(ctx context.Context) ([]Item, error) {
	snap, err := f.store.Read(ctx, Path)
	if err != nil {
		return nil, err
	}

	rec, ok := snap.Latest()
	if !ok {
		return nil, nil
	}

	items, err := ParseItems(rec.Fields["foodItems"])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return append([]Item(nil), DefaultItems...), nil
	}
	return items, nil
}

// Names returns the names of the current items. Failures are logged and
// yield no names, so callers can still prompt without ingredients.
func (f *Feed) Names(ctx context.Context) []string {
	items, err := f.Latest(ctx)
	if err != nil {
		log.Printf("failed to read food items: %v", err)
		return nil
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

// Delete removes one item from the latest detection.
func (f *Feed) Delete(ctx context.Context, itemID string) error {
	snap, err := f.store.Read(ctx, Path)
	if err != nil {
		return err
	}

	rec, ok := snap.Latest()
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	raw, _ := rec.Fields["foodItems"].(map[string]any)
	if _, ok := raw[itemID]; !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	fields := make(realtime.Fields, len(rec.Fields))
	for k, v := range rec.Fields {
		fields[k] = v
	}
	remaining := make(map[string]any, len(raw)-1)
	for k, v := range raw {
		if k != itemID {
			remaining[k] = v
		}
	}
	fields["foodItems"] = remaining

	return f.store.Set(ctx, Path, rec.ID, fields)
}

// Push appends a new detection snapshot and returns its id.
func (f *Feed) Push(ctx context.Context, items []Item) (string, error) {
	raw := make(map[string]any, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Name) == "" {
			return "", fmt.Errorf("%w: id and name are required", ErrInvalidItem)
		}
		raw[item.ID] = map[string]any{
			"name":     item.Name,
			"quantity": item.Quantity,
			"calorie":  item.Calorie,
		}
	}
	return f.store.Append(ctx, Path, realtime.Fields{"foodItems": raw})
}

// ParseItems validates a raw foodItems map keyed by item id. A missing map
// is treated as empty.
func ParseItems(raw any) ([]Item, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: foodItems is %T, not an object", shared.ErrMalformedResponse, raw)
	}

	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]Item, 0, len(m))
	for _, id := range ids {
		entry, ok := m[id].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: food item %s is not an object", shared.ErrMalformedResponse, id)
		}
		name, ok := entry["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: food item %s has no name", shared.ErrMalformedResponse, id)
		}
		quantity, err := number(entry["quantity"])
		if err != nil {
			return nil, fmt.Errorf("%w: food item %s quantity: %v", shared.ErrMalformedResponse, id, err)
		}
		calorie, err := number(entry["calorie"])
		if err != nil {
			return nil, fmt.Errorf("%w: food item %s calorie: %v", shared.ErrMalformedResponse, id, err)
		}
		items = append(items, Item{ID: id, Name: name, Quantity: quantity, Calorie: calorie})
	}
	return items, nil
}

// number accepts JSON numbers and numeric strings. A missing value is zero.
func number(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
