package haunt

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"specter/cmd/internal/web"
)

type boundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ghostDetection struct {
	GhostDetected bool        `json:"ghost_detected"`
	GhostType     string      `json:"ghost_type"`
	BoundingBox   boundingBox `json:"bounding_box"`
}

type ghostSighting struct {
	GhostType string `json:"ghost_type"`
	Location  string `json:"location"`
	Time      string `json:"time"`
}

type ghostInfo struct {
	GhostType           string `json:"ghost_type"`
	FavoriteFood        string `json:"favorite_food"`
	FavoriteTimeOfNight string `json:"favorite_time_of_night"`
	TypicalAge          string `json:"typical_age"`
	Origin              string `json:"origin"`
	Description         string `json:"description"`
}

type hunter struct {
	Username       string `json:"username"`
	SightingsCount int    `json:"sightings_count"`
}

type spookLevel struct {
	SpookLevel  int    `json:"spook_level"`
	Description string `json:"description"`
}

type spiritGuideRequest struct {
	Question string `json:"question"`
}

type spiritGuideAnswer struct {
	Answer string `json:"answer"`
}

// RegisterHuman mounts the human-realm routes. The router must already be
// gated by the human auth middleware.
func RegisterHuman(r chi.Router) {
	r.Post("/detect", handleHumanDetect)
	r.Get("/sightings", handleHumanSightings)
	r.Get("/ghost-info", handleGhostInfo)
	r.Get("/users", handleUsers)
	r.Get("/spook-level", handleSpookLevel)
	r.Post("/spirit-guide", handleSpiritGuide)
}

func handleHumanDetect(w http.ResponseWriter, r *http.Request) {
	ok := hasImage(r)
	lat := strings.TrimSpace(r.FormValue("latitude"))
	lon := strings.TrimSpace(r.FormValue("longitude"))
	if !ok || lat == "" || lon == "" {
		web.WriteError(w, http.StatusBadRequest, "Image and location required")
		return
	}

	web.WriteJSON(w, http.StatusOK, ghostDetection{
		GhostDetected: true,
		GhostType:     "Poltergeist",
		BoundingBox:   boundingBox{X: 120, Y: 80, Width: 200, Height: 200},
	})
}

func handleHumanSightings(w http.ResponseWriter, r *http.Request) {
	if !hasLocation(r) {
		web.WriteError(w, http.StatusBadRequest, "Location required")
		return
	}

	web.WriteJSON(w, http.StatusOK, struct {
		Sightings []ghostSighting `json:"sightings"`
	}{
		Sightings: []ghostSighting{
			{GhostType: "Banshee", Location: "13 Haunted Lane", Time: "02:00 AM"},
			{GhostType: "Wraith", Location: "Old Cemetery", Time: "03:15 AM"},
		},
	})
}

func handleGhostInfo(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(r.URL.Query().Get("ghost_type")) == "" {
		web.WriteError(w, http.StatusBadRequest, "Ghost type required")
		return
	}

	web.WriteJSON(w, http.StatusOK, ghostInfo{
		GhostType:           "Poltergeist",
		FavoriteFood:        "Cold pizza",
		FavoriteTimeOfNight: "2:00 AM",
		TypicalAge:          "300 years",
		Origin:              "Medieval Europe",
		Description:         "A mischievous spirit known for moving objects and causing trouble.",
	})
}

func handleUsers(w http.ResponseWriter, _ *http.Request) {
	web.WriteJSON(w, http.StatusOK, struct {
		Users []hunter `json:"users"`
	}{
		Users: []hunter{
			{Username: "GhostHunter22", SightingsCount: 5},
			{Username: "SpookySeeker", SightingsCount: 12},
		},
	})
}

func handleSpookLevel(w http.ResponseWriter, r *http.Request) {
	if !hasLocation(r) {
		web.WriteError(w, http.StatusBadRequest, "Location required")
		return
	}

	web.WriteJSON(w, http.StatusOK, spookLevel{
		SpookLevel:  9,
		Description: "Extremely haunted. Watch your back!",
	})
}

func handleSpiritGuide(w http.ResponseWriter, r *http.Request) {
	var req spiritGuideRequest
	if err := web.DecodeJSON(w, r, 1<<20, &req); err != nil || strings.TrimSpace(req.Question) == "" {
		web.WriteError(w, http.StatusBadRequest, "Question required")
		return
	}

	web.WriteJSON(w, http.StatusOK, spiritGuideAnswer{
		Answer: "That's a bad idea... trust me.",
	})
}

func hasLocation(r *http.Request) bool {
	q := r.URL.Query()
	return strings.TrimSpace(q.Get("latitude")) != "" && strings.TrimSpace(q.Get("longitude")) != ""
}
