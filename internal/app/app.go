package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"meal-scheduler/internal/config"
	"meal-scheduler/internal/database"
	"meal-scheduler/internal/food"
	"meal-scheduler/internal/httpapi"
	"meal-scheduler/internal/llm"
	"meal-scheduler/internal/metrics"
	"meal-scheduler/internal/realtime"
	"meal-scheduler/internal/recipe"
	"meal-scheduler/internal/schedule"
	"meal-scheduler/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	db           *database.DB
	store        *realtime.Store
	textGen      llm.Client
	recipes      recipe.Provider
	recipeCache  *storage.RecipeStore
	metricsStore *metrics.Store
	engine       *schedule.Engine
	feed         *food.Feed
}

// New opens the database and builds every component from cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	textGen, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	recipeCache, err := storage.NewRecipeStore(filepath.Join(filepath.Dir(cfg.DatabasePath), "recipes"))
	if err != nil {
		textGen.Close()
		db.Close()
		return nil, err
	}

	store := realtime.NewStore(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)
	recipes := recipe.NewSpoonacularClient(cfg)

	return &App{
		cfg:          cfg,
		db:           db,
		store:        store,
		textGen:      textGen,
		recipes:      recipes,
		recipeCache:  recipeCache,
		metricsStore: metricsStore,
		engine:       schedule.NewEngine(store, textGen, recipes, metricsStore),
		feed:         food.NewFeed(store),
	}, nil
}

// Close releases every resource held by the App.
func (a *App) Close() error {
	return errors.Join(a.store.Close(), a.textGen.Close(), a.db.Close())
}

// Engine returns the schedule engine.
func (a *App) Engine() *schedule.Engine {
	return a.engine
}

// Food returns the detection feed.
func (a *App) Food() *food.Feed {
	return a.feed
}

// Metrics returns the usage store.
func (a *App) Metrics() *metrics.Store {
	return a.metricsStore
}

// Handler returns the HTTP API.
func (a *App) Handler() http.Handler {
	return httpapi.New(httpapi.Deps{
		Engine:    a.engine,
		Food:      a.feed,
		Recipes:   a.recipes,
		TextGen:   a.textGen,
		Cache:     a.recipeCache,
		Usage:     a.metricsStore,
		DataPath:  filepath.Dir(a.cfg.DatabasePath),
		JWTSecret: a.cfg.AuthJWTSecret,
	})
}

// Serve runs the API on addr until ctx is done, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
	}

	errCh := make(chan error, 2)
	go func() {
		if err := a.engine.Run(ctx); err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("schedule sync stopped: %w", err)
		}
	}()
	go func() {
		log.Printf("Meal scheduler listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
	}()

	var runErr error
	select {
	case runErr = <-errCh:
		log.Printf("Stopping: %v", runErr)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return errors.Join(runErr, fmt.Errorf("server forced to shutdown: %w", err))
	}
	log.Println("Server exiting")
	return runErr
}
