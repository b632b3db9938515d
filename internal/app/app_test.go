package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"meal-scheduler/internal/config"
	"meal-scheduler/internal/schedule"
)

func TestNewAndHandler(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		LLMProvider:    config.ProviderGemini,
		GeminiModel:    "gemini-1.5-flash",
		SpoonacularURL: "http://spoonacular.invalid",
		DatabasePath:   filepath.Join(t.TempDir(), "data", "app.db"),
	}

	a, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer a.Close()

	input := "schedule:\n  - {className: Math, day: Monday, startTime: \"09:00\", endTime: \"10:00\"}\n"
	if _, err := ImportSchedule(ctx, a.Engine(), strings.NewReader(input)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if err := a.Engine().Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := a.Engine().Entries(schedule.Monday); len(got) != 1 {
		t.Fatalf("Expected 1 Monday entry, got %d", len(got))
	}

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/schedule?day=Monday", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"className":"Math"`) {
		t.Errorf("Unexpected body %s", rec.Body.String())
	}

	// Without credentials suggestions come back empty instead of failing.
	if s := a.Engine().SuggestRecipeForBudget(ctx, 10, nil); s != "" {
		t.Errorf("Expected empty suggestion, got %q", s)
	}
}

func TestServeStopsWhenScheduleSyncFails(t *testing.T) {
	cfg := &config.Config{
		LLMProvider:  config.ProviderGemini,
		DatabasePath: filepath.Join(t.TempDir(), "app.db"),
	}
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer a.Close()

	// A closed store refuses new subscriptions.
	if err := a.store.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- a.Serve(context.Background(), "127.0.0.1:0") }()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "schedule sync stopped") {
			t.Errorf("Expected schedule sync error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve kept running without a schedule subscription")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		LLMProvider:  config.ProviderGemini,
		DatabasePath: filepath.Join(t.TempDir(), "app.db"),
	}
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
