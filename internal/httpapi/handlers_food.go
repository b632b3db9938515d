package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"meal-scheduler/internal/food"

	"github.com/gorilla/mux"
)

func (s *Server) listFood(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Food.Latest(r.Context())
	if err != nil {
		log.Printf("failed to read food items: %v", err)
	}
	if items == nil {
		items = []food.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) deleteFood(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Food.Delete(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, food.ErrItemNotFound) {
		writeError(w, http.StatusNotFound, "food item not found")
		return
	}
	if err != nil {
		log.Printf("failed to delete food item: %v", err)
		writeError(w, http.StatusBadGateway, "failed to delete food item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type detectionRequest struct {
	Items []food.Item `json:"items"`
}

func (s *Server) pushDetection(w http.ResponseWriter, r *http.Request) {
	var req detectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := s.deps.Food.Push(r.Context(), req.Items)
	if errors.Is(err, food.ErrInvalidItem) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("failed to store detection: %v", err)
		writeError(w, http.StatusBadGateway, "failed to store detection")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}
