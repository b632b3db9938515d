package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"meal-scheduler/internal/recipe"
	"meal-scheduler/internal/schedule"

	"github.com/gorilla/mux"
)

func (s *Server) searchRecipes(w http.ResponseWriter, r *http.Request) {
	results := []recipe.Summary{}

	names := s.deps.Food.Names(r.Context())
	if len(names) > 0 {
		found, err := s.deps.Recipes.Search(r.Context(), names, recipe.DefaultSearchCount)
		if err != nil {
			log.Printf("recipe search failed: %v", err)
		} else {
			results = append(results, found...)
		}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}

	if s.deps.Cache != nil {
		if r.URL.Query().Get("refresh") == "true" {
			s.forgetRecipe(id)
		}
		cached, ok, err := s.deps.Cache.Load(id)
		if err != nil {
			log.Printf("recipe cache read failed for %d: %v", id, err)
			s.forgetRecipe(id)
		}
		if ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	detail, err := s.deps.Recipes.Detail(r.Context(), id)
	if err != nil {
		log.Printf("recipe %d lookup failed: %v", id, err)
		writeError(w, http.StatusBadGateway, "recipe lookup failed")
		return
	}

	formatted, meta, err := recipe.FormatInstructions(r.Context(), s.deps.TextGen, detail)
	s.recordMeta(r.Context(), meta)
	if err != nil {
		// Keep the provider's instructions; they are not cached so a later
		// request retries the formatting.
		log.Printf("recipe %d instructions left unformatted: %v", id, err)
		writeJSON(w, http.StatusOK, detail)
		return
	}

	if s.deps.Cache != nil {
		if err := s.deps.Cache.Save(formatted); err != nil {
			log.Printf("recipe cache write failed for %d: %v", id, err)
		}
	}
	writeJSON(w, http.StatusOK, formatted)
}

func (s *Server) forgetRecipe(id int) {
	if err := s.deps.Cache.Remove(id); err != nil {
		log.Printf("recipe cache remove failed for %d: %v", id, err)
	}
}

type budgetRequest struct {
	Minutes int `json:"minutes"`
}

type mealsRequest struct {
	Day string `json:"day"`
}

type suggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

func (s *Server) suggestBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Minutes <= 0 {
		writeError(w, http.StatusBadRequest, "minutes must be positive")
		return
	}

	names := s.deps.Food.Names(r.Context())
	writeJSON(w, http.StatusOK, suggestionResponse{
		Suggestion: s.deps.Engine.SuggestRecipeForBudget(r.Context(), req.Minutes, names),
	})
}

func (s *Server) suggestMeals(w http.ResponseWriter, r *http.Request) {
	var req mealsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	day := schedule.ParseDay(req.Day)
	if !day.Known() {
		writeError(w, http.StatusBadRequest, "day must be a weekday name")
		return
	}

	names := s.deps.Food.Names(r.Context())
	writeJSON(w, http.StatusOK, suggestionResponse{
		Suggestion: s.deps.Engine.SuggestMeals(r.Context(), day, names),
	})
}

func (s *Server) usage(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive number")
			return
		}
		days = n
	}

	usage, err := s.deps.Usage.GetDailyUsage(r.Context(), days)
	if err != nil {
		log.Printf("failed to read usage: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to read usage")
		return
	}
	writeJSON(w, http.StatusOK, usage)
}
