package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"meal-scheduler/internal/recipe"
)

// RecipeStore provides a file-based cache for recipe details whose
// instructions have already been formatted.
type RecipeStore struct {
	basePath string
}

// NewRecipeStore creates a new RecipeStore and ensures the base directory exists.
func NewRecipeStore(basePath string) (*RecipeStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &RecipeStore{basePath: basePath}, nil
}

func (s *RecipeStore) path(recipeID int) string {
	return filepath.Join(s.basePath, strconv.Itoa(recipeID)+".json")
}

// Save stores a recipe detail, replacing any previous copy.
func (s *RecipeStore) Save(detail recipe.Detail) error {
	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	if err := os.WriteFile(s.path(detail.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// Load retrieves a cached recipe detail. The boolean is false when the
// recipe has not been cached.
func (s *RecipeStore) Load(recipeID int) (recipe.Detail, bool, error) {
	data, err := os.ReadFile(s.path(recipeID))
	if errors.Is(err, os.ErrNotExist) {
		return recipe.Detail{}, false, nil
	}
	if err != nil {
		return recipe.Detail{}, false, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var detail recipe.Detail
	if err := json.Unmarshal(data, &detail); err != nil {
		return recipe.Detail{}, false, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return detail, true, nil
}

// Remove deletes a cached recipe detail. Removing a missing entry is not an error.
func (s *RecipeStore) Remove(recipeID int) error {
	if err := os.Remove(s.path(recipeID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove recipe file: %w", err)
	}
	return nil
}
