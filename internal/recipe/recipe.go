package recipe

import "context"

// DefaultSearchCount is the number of recipes requested per search.
const DefaultSearchCount = 5

// Summary is a recipe search result.
type Summary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// Detail is a full recipe. Instructions hold HTML as returned by the
// provider, or numbered HTML steps once formatted.
type Detail struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Image        string `json:"image"`
	Instructions string `json:"instructions"`
}

// Provider searches and fetches recipes.
type Provider interface {
	Search(ctx context.Context, ingredients []string, count int) ([]Summary, error)
	Detail(ctx context.Context, id int) (Detail, error)
}
