// Package httpapi exposes the schedule, food feed, recipes and suggestions
// as a JSON API with a WebSocket stream of the schedule view.
package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"meal-scheduler/internal/food"
	"meal-scheduler/internal/llm"
	"meal-scheduler/internal/metrics"
	"meal-scheduler/internal/recipe"
	"meal-scheduler/internal/schedule"
	"meal-scheduler/internal/shared"

	"github.com/gorilla/mux"
)

// ScheduleEngine is the schedule behaviour the API serves.
type ScheduleEngine interface {
	Entries(day schedule.Day) []schedule.Entry
	FillDay(ctx context.Context, day schedule.Day, ingredients []string) []schedule.Entry
	Create(ctx context.Context, entry schedule.Entry) (string, error)
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context) <-chan []schedule.Entry
	SuggestRecipeForBudget(ctx context.Context, minutes int, ingredients []string) string
	SuggestMeals(ctx context.Context, day schedule.Day, ingredients []string) string
}

// FoodFeed is the detected food the API serves.
type FoodFeed interface {
	Latest(ctx context.Context) ([]food.Item, error)
	Names(ctx context.Context) []string
	Delete(ctx context.Context, itemID string) error
	Push(ctx context.Context, items []food.Item) (string, error)
}

// RecipeCache keeps recipe details whose instructions were formatted.
type RecipeCache interface {
	Load(recipeID int) (recipe.Detail, bool, error)
	Save(detail recipe.Detail) error
	Remove(recipeID int) error
}

// UsageStore records and reports generation usage.
type UsageStore interface {
	RecordMeta(ctx context.Context, meta shared.AgentMeta) error
	GetDailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error)
}

// Deps are the collaborators of a Server. Cache may be nil.
type Deps struct {
	Engine    ScheduleEngine
	Food      FoodFeed
	Recipes   recipe.Provider
	TextGen   llm.TextGenerator
	Cache     RecipeCache
	Usage     UsageStore
	DataPath  string
	JWTSecret string
}

// Server routes API requests.
type Server struct {
	deps    Deps
	router  *mux.Router
	handler http.Handler
}

// New creates a new Server and registers its routes.
func New(deps Deps) *Server {
	s := &Server{
		deps:   deps,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	// Preflight requests match no route, so CORS wraps the router.
	s.handler = corsMiddleware(s.router)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.health).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	if s.deps.JWTSecret != "" {
		api.Use(bearerAuth([]byte(s.deps.JWTSecret)))
	}

	sched := api.PathPrefix("/schedule").Subrouter()
	sched.HandleFunc("", s.listSchedule).Methods("GET")
	sched.HandleFunc("", s.createScheduleEntry).Methods("POST")
	sched.HandleFunc("/stream", s.streamSchedule).Methods("GET")
	sched.HandleFunc("/fill", s.fillSchedule).Methods("POST")
	sched.HandleFunc("/{id}", s.deleteScheduleEntry).Methods("DELETE")

	api.HandleFunc("/food", s.listFood).Methods("GET")
	api.HandleFunc("/food/detections", s.pushDetection).Methods("POST")
	api.HandleFunc("/food/{id}", s.deleteFood).Methods("DELETE")

	api.HandleFunc("/recipes", s.searchRecipes).Methods("GET")
	api.HandleFunc("/recipes/{id:[0-9]+}", s.getRecipe).Methods("GET")

	api.HandleFunc("/suggestions/budget", s.suggestBudget).Methods("POST")
	api.HandleFunc("/suggestions/meals", s.suggestMeals).Methods("POST")

	api.HandleFunc("/metrics/usage", s.usage).Methods("GET")
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"system": metrics.GetSysHealth(s.deps.DataPath),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) recordMeta(ctx context.Context, meta shared.AgentMeta) {
	if s.deps.Usage == nil {
		return
	}
	if err := s.deps.Usage.RecordMeta(ctx, meta); err != nil {
		log.Printf("failed to record %s metrics: %v", meta.AgentName, err)
	}
}
