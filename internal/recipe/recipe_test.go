package recipe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meal-scheduler/internal/config"
	"meal-scheduler/internal/llm"
	"meal-scheduler/internal/shared"
)

// mockTextGenerator is a mock implementation of llm.TextGenerator for testing.
type mockTextGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{
		Content: m.response,
		Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 5, Model: "mock"},
	}, nil
}

func newTestClient(url string) Provider {
	return NewSpoonacularClient(&config.Config{SpoonacularURL: url, SpoonacularAPIKey: "spoon"})
}

func TestSpoonacularClient_Search(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/recipes/findByIngredients" {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("ingredients") != "Chicken,Rice" {
				t.Errorf("Expected comma-joined ingredients, got %q", q.Get("ingredients"))
			}
			if q.Get("number") != "5" || q.Get("ranking") != "2" || q.Get("ignorePantry") != "true" {
				t.Errorf("Unexpected query %s", r.URL.RawQuery)
			}
			if q.Get("apiKey") != "spoon" {
				t.Errorf("Expected apiKey 'spoon', got %q", q.Get("apiKey"))
			}
			_, _ = w.Write([]byte(`[
				{"id": 1, "title": "Chicken Rice", "image": "a.jpg"},
				{"id": 2, "title": "Fried Rice", "image": "b.jpg"}
			]`))
		}))
		defer server.Close()

		results, err := newTestClient(server.URL).Search(context.Background(), []string{"Chicken", "Rice"}, 0)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(results) != 2 || results[1].Title != "Fried Rice" {
			t.Errorf("Unexpected results: %+v", results)
		}
	})

	t.Run("MissingTitle", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"id": 1}]`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Search(context.Background(), []string{"Chicken"}, 5)
		if !errors.Is(err, shared.ErrMalformedResponse) {
			t.Fatalf("Expected ErrMalformedResponse, got %v", err)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Search(context.Background(), []string{"Chicken"}, 5)
		if !errors.Is(err, shared.ErrRemoteCall) {
			t.Fatalf("Expected ErrRemoteCall, got %v", err)
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		client := NewSpoonacularClient(&config.Config{SpoonacularURL: "http://unused.invalid"})
		_, err := client.Search(context.Background(), []string{"Chicken"}, 5)
		if !errors.Is(err, shared.ErrMissingCredential) {
			t.Fatalf("Expected ErrMissingCredential, got %v", err)
		}
	})
}

func TestSpoonacularClient_Detail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/42/information":
			if r.URL.Query().Get("includeNutrition") != "false" {
				t.Errorf("Expected includeNutrition=false, got %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"id": 42, "title": "Soup", "image": "s.jpg", "instructions": "<p>Boil water.</p>"}`))
		case "/recipes/7/information":
			_, _ = w.Write([]byte(`{"id": 7, "title": "Salad", "instructions": null}`))
		default:
			_, _ = w.Write([]byte(`{"image": "x.jpg"}`))
		}
	}))
	defer server.Close()
	client := newTestClient(server.URL)

	t.Run("Success", func(t *testing.T) {
		detail, err := client.Detail(context.Background(), 42)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if detail.Title != "Soup" || detail.Instructions != "<p>Boil water.</p>" {
			t.Errorf("Unexpected detail: %+v", detail)
		}
	})

	t.Run("NullInstructions", func(t *testing.T) {
		detail, err := client.Detail(context.Background(), 7)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if detail.Instructions != "" {
			t.Errorf("Expected empty instructions, got %q", detail.Instructions)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := client.Detail(context.Background(), 1)
		if !errors.Is(err, shared.ErrMalformedResponse) {
			t.Fatalf("Expected ErrMalformedResponse, got %v", err)
		}
	})
}

func TestFormatInstructions(t *testing.T) {
	ctx := context.Background()
	detail := Detail{ID: 1, Title: "Soup", Instructions: "Boil water. Add salt."}

	t.Run("Success", func(t *testing.T) {
		gen := &mockTextGenerator{response: "```html\n<ol><li>Boil water.</li><li>Add salt.</li></ol>\n```"}

		formatted, meta, err := FormatInstructions(ctx, gen, detail)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if formatted.Instructions != "<ol><li>Boil water.</li><li>Add salt.</li></ol>" {
			t.Errorf("Unexpected instructions %q", formatted.Instructions)
		}
		if meta.AgentName != "InstructionFormatter" || meta.Usage.PromptTokens != 10 {
			t.Errorf("Unexpected meta: %+v", meta)
		}
		if !strings.Contains(gen.lastPrompt, "Boil water. Add salt.") {
			t.Errorf("Expected prompt to contain the instructions, got %q", gen.lastPrompt)
		}
	})

	t.Run("GeneratorFailureKeepsOriginal", func(t *testing.T) {
		gen := &mockTextGenerator{err: shared.ErrRemoteCall}

		formatted, _, err := FormatInstructions(ctx, gen, detail)
		if !errors.Is(err, shared.ErrRemoteCall) {
			t.Fatalf("Expected ErrRemoteCall, got %v", err)
		}
		if formatted.Instructions != detail.Instructions {
			t.Errorf("Expected original instructions, got %q", formatted.Instructions)
		}
	})

	t.Run("EmptyInstructionsSkipGenerator", func(t *testing.T) {
		gen := &mockTextGenerator{err: errors.New("must not be called")}

		_, _, err := FormatInstructions(ctx, gen, Detail{ID: 2, Title: "Toast"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if gen.lastPrompt != "" {
			t.Error("Expected generator not to be called")
		}
	})
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "List",
			html: "<ul><li>Breakfast 07:00</li>\n  <li> Lunch </li></ul>",
			want: "Breakfast 07:00\nLunch",
		},
		{
			name: "DropsScripts",
			html: "<p>Eat well</p><script>alert(1)</script>",
			want: "Eat well",
		},
		{
			name: "PlainInput",
			html: "  just text  ",
			want: "just text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.html); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}
