package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"meal-scheduler/internal/realtime"
	"meal-scheduler/internal/schedule"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type scheduleEntryRequest struct {
	ClassName string `json:"className"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (s *Server) listSchedule(w http.ResponseWriter, r *http.Request) {
	var day schedule.Day
	if raw := r.URL.Query().Get("day"); raw != "" {
		day = schedule.ParseDay(raw)
	}
	writeJSON(w, http.StatusOK, nonNil(s.deps.Engine.Entries(day)))
}

func (s *Server) createScheduleEntry(w http.ResponseWriter, r *http.Request) {
	var req scheduleEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := schedule.ParseEntry(req.ClassName, req.Day, req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.deps.Engine.Create(r.Context(), entry)
	if errors.Is(err, schedule.ErrInvalidEntry) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("failed to create schedule entry: %v", err)
		writeError(w, http.StatusBadGateway, "failed to save schedule entry")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) deleteScheduleEntry(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Engine.Delete(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, realtime.ErrNotFound) {
		writeError(w, http.StatusNotFound, "schedule entry not found")
		return
	}
	if err != nil {
		log.Printf("failed to delete schedule entry: %v", err)
		writeError(w, http.StatusBadGateway, "failed to delete schedule entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fillSchedule(w http.ResponseWriter, r *http.Request) {
	day := schedule.ParseDay(r.URL.Query().Get("day"))
	if !day.Known() {
		writeError(w, http.StatusBadRequest, "day must be a weekday name")
		return
	}

	ingredients := s.deps.Food.Names(r.Context())
	writeJSON(w, http.StatusOK, nonNil(s.deps.Engine.FillDay(r.Context(), day, ingredients)))
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	streamWriteWait    = 10 * time.Second
	streamPingInterval = 25 * time.Second
)

// streamSchedule pushes the whole augmented week on connect and after
// every change.
func (s *Server) streamSchedule(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	views := s.deps.Engine.Watch(ctx)

	go func() {
		defer cancel()
		ping := time.NewTicker(streamPingInterval)
		defer ping.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case week, ok := <-views:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteJSON(nonNil(week)); err != nil {
					return
				}
			case <-ping.C:
				conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func nonNil(entries []schedule.Entry) []schedule.Entry {
	if entries == nil {
		return []schedule.Entry{}
	}
	return entries
}
