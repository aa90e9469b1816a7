package haunt

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"specter/cmd/internal/web"
)

type humanDetection struct {
	HumanDetected bool   `json:"human_detected"`
	HumanAge      int    `json:"human_age"`
	HumanIdentity string `json:"human_identity"`
	SpookLevel    string `json:"spook_level"`
}

type spookyName struct {
	SpookyName string `json:"spooky_name"`
}

type humanSighting struct {
	HumanName string `json:"human_name"`
	Location  string `json:"location"`
	Time      string `json:"time"`
}

type favoriteHaunt struct {
	Location    string `json:"location"`
	ScaresGiven int    `json:"scares_given"`
}

// RegisterGhost mounts the ghost-realm routes. The router must already be
// gated by the ghost auth middleware.
func RegisterGhost(r chi.Router) {
	r.Post("/detect", handleGhostDetect)
	r.Get("/spooky-name", handleSpookyName)
	r.Get("/sightings", handleGhostSightings)
	r.Get("/favorite-haunts", handleFavoriteHaunts)
}

func handleGhostDetect(w http.ResponseWriter, r *http.Request) {
	if !hasImage(r) {
		web.WriteError(w, http.StatusBadRequest, "Image required")
		return
	}

	web.WriteJSON(w, http.StatusOK, humanDetection{
		HumanDetected: true,
		HumanAge:      29,
		HumanIdentity: "John Doe",
		SpookLevel:    "Terrified",
	})
}

func handleSpookyName(w http.ResponseWriter, _ *http.Request) {
	web.WriteJSON(w, http.StatusOK, spookyName{SpookyName: "The Shadow Whisperer"})
}

func handleGhostSightings(w http.ResponseWriter, r *http.Request) {
	if !hasLocation(r) {
		web.WriteError(w, http.StatusBadRequest, "Location required")
		return
	}

	web.WriteJSON(w, http.StatusOK, struct {
		HumanSightings []humanSighting `json:"human_sightings"`
	}{
		HumanSightings: []humanSighting{
			{HumanName: "Jane Smith", Location: "Haunted Mansion", Time: "10:00 PM"},
			{HumanName: "Bob the Builder", Location: "Spooky Forest", Time: "11:45 PM"},
		},
	})
}

func handleFavoriteHaunts(w http.ResponseWriter, _ *http.Request) {
	web.WriteJSON(w, http.StatusOK, struct {
		FavoriteHaunts []favoriteHaunt `json:"favorite_haunts"`
	}{
		FavoriteHaunts: []favoriteHaunt{
			{Location: "Old Lighthouse", ScaresGiven: 15},
			{Location: "Abandoned Hospital", ScaresGiven: 20},
		},
	})
}
