package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"meal-scheduler/internal/config"
	"meal-scheduler/internal/shared"
)

// spoonacularClient is the Spoonacular implementation of Provider.
type spoonacularClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewSpoonacularClient creates a new Spoonacular API client.
func NewSpoonacularClient(cfg *config.Config) Provider {
	return &spoonacularClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    cfg.SpoonacularURL,
		apiKey:     cfg.SpoonacularAPIKey,
	}
}

// Wire shapes use pointers so missing required fields can be told apart
// from zero values.
type spoonacularSummary struct {
	ID    *int    `json:"id"`
	Title *string `json:"title"`
	Image string  `json:"image"`
}

type spoonacularDetail struct {
	ID           *int    `json:"id"`
	Title        *string `json:"title"`
	Image        string  `json:"image"`
	Instructions *string `json:"instructions"`
}

// Search finds recipes that use the given ingredients, maximizing the
// number of used ingredients and ignoring pantry staples.
func (c *spoonacularClient) Search(ctx context.Context, ingredients []string, count int) ([]Summary, error) {
	if count <= 0 {
		count = DefaultSearchCount
	}

	params := url.Values{}
	params.Set("ingredients", strings.Join(ingredients, ","))
	params.Set("number", strconv.Itoa(count))
	params.Set("ranking", "2")
	params.Set("ignorePantry", "true")

	var raw []spoonacularSummary
	if err := c.get(ctx, "/recipes/findByIngredients", params, &raw); err != nil {
		return nil, err
	}

	results := make([]Summary, 0, len(raw))
	for i, r := range raw {
		if r.ID == nil || r.Title == nil {
			return nil, fmt.Errorf("%w: search result %d lacks id or title", shared.ErrMalformedResponse, i)
		}
		results = append(results, Summary{ID: *r.ID, Title: *r.Title, Image: r.Image})
	}
	return results, nil
}

// Detail fetches a single recipe with its instructions.
func (c *spoonacularClient) Detail(ctx context.Context, id int) (Detail, error) {
	params := url.Values{}
	params.Set("includeNutrition", "false")

	var raw spoonacularDetail
	if err := c.get(ctx, fmt.Sprintf("/recipes/%d/information", id), params, &raw); err != nil {
		return Detail{}, err
	}

	if raw.ID == nil || raw.Title == nil {
		return Detail{}, fmt.Errorf("%w: recipe %d lacks id or title", shared.ErrMalformedResponse, id)
	}

	detail := Detail{ID: *raw.ID, Title: *raw.Title, Image: raw.Image}
	if raw.Instructions != nil {
		detail.Instructions = *raw.Instructions
	}
	return detail, nil
}

func (c *spoonacularClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: SPOONACULAR_API_KEY is not defined", shared.ErrMissingCredential)
	}
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: spoonacular: %w", shared.ErrRemoteCall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: spoonacular api error: status %d", shared.ErrRemoteCall, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode spoonacular response: %w", shared.ErrMalformedResponse, err)
	}
	return nil
}
