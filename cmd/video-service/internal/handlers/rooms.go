package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/talentflow/services/backend/internal/models"
	"gitlab.com/talentflow/services/backend/internal/signaling"
)

// ListRooms returns summaries of every active room. Participant
// identities are not included in the listing.
func ListRooms(svc *signaling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ActiveRooms{Rooms: svc.ActiveRooms()})
	}
}

// GetRoom returns the full snapshot of one room, or 404.
func GetRoom(svc *signaling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		roomID := vars["roomID"]

		snapshot, err := svc.RoomInfo(roomID)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(models.RoomError{Error: err.Error()})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}
