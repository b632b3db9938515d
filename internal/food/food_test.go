package food

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"meal-scheduler/internal/realtime"
	"meal-scheduler/internal/shared"
)

// mockStore is an in-memory implementation of Store for testing.
type mockStore struct {
	records []realtime.Record
	readErr error
}

func (m *mockStore) Read(ctx context.Context, path string) (realtime.Snapshot, error) {
	if m.readErr != nil {
		return realtime.Snapshot{}, m.readErr
	}
	return realtime.Snapshot{Path: path, Records: append([]realtime.Record(nil), m.records...)}, nil
}

func (m *mockStore) Append(ctx context.Context, path string, fields realtime.Fields) (string, error) {
	id := fmt.Sprintf("rec-%d", len(m.records)+1)
	m.records = append(m.records, realtime.Record{ID: id, Fields: fields})
	return id, nil
}

func (m *mockStore) Set(ctx context.Context, path, id string, fields realtime.Fields) error {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].Fields = fields
			return nil
		}
	}
	return realtime.ErrNotFound
}

func detection(items map[string]any) realtime.Record {
	return realtime.Record{ID: "det", Fields: realtime.Fields{"foodItems": items}}
}

func TestFeed_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("NoDetections", func(t *testing.T) {
		items, err := NewFeed(&mockStore{}).Latest(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if items != nil {
			t.Errorf("Expected nil items, got %+v", items)
		}
	})

	t.Run("EmptyLatestFallsBack", func(t *testing.T) {
		store := &mockStore{records: []realtime.Record{
			detection(map[string]any{"a": map[string]any{"name": "Rice", "quantity": 1.0, "calorie": 200.0}}),
			detection(map[string]any{}),
		}}
		items, err := NewFeed(store).Latest(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(items) != 1 || items[0].Name != "Chicken" || items[0].Calorie != 1000 {
			t.Errorf("Expected default Chicken item, got %+v", items)
		}
	})

	t.Run("LatestWins", func(t *testing.T) {
		store := &mockStore{records: []realtime.Record{
			detection(map[string]any{"x": map[string]any{"name": "Old"}}),
			detection(map[string]any{
				"b": map[string]any{"name": "Egg", "quantity": "2", "calorie": 140.0},
				"a": map[string]any{"name": "Rice", "quantity": 1.0, "calorie": 200.0},
			}),
		}}
		items, err := NewFeed(store).Latest(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(items) != 2 || items[0].Name != "Rice" || items[1].Name != "Egg" || items[1].Quantity != 2 {
			t.Errorf("Unexpected items %+v", items)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		store := &mockStore{records: []realtime.Record{
			detection(map[string]any{"a": map[string]any{"quantity": 1.0}}),
		}}
		_, err := NewFeed(store).Latest(ctx)
		if !errors.Is(err, shared.ErrMalformedResponse) {
			t.Fatalf("Expected ErrMalformedResponse, got %v", err)
		}
	})
}

func TestFeed_Names(t *testing.T) {
	store := &mockStore{readErr: errors.New("store down")}
	if names := NewFeed(store).Names(context.Background()); names != nil {
		t.Errorf("Expected no names on failure, got %v", names)
	}
}

func TestFeed_PushAndDelete(t *testing.T) {
	ctx := context.Background()
	store := &mockStore{}
	feed := NewFeed(store)

	_, err := feed.Push(ctx, []Item{
		{ID: "a", Name: "Rice", Quantity: 1, Calorie: 200},
		{ID: "b", Name: "Egg", Quantity: 2, Calorie: 140},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := feed.Delete(ctx, "a"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	items, err := feed.Latest(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].ID != "b" {
		t.Errorf("Expected only Egg to remain, got %+v", items)
	}

	if err := feed.Delete(ctx, "a"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}

	if _, err := feed.Push(ctx, []Item{{ID: "", Name: "Nameless"}}); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("Expected ErrInvalidItem, got %v", err)
	}
}
