package twitch_handler

import (
	"net/http"

	"twitch_discord_bot/internal/middleware"
)

type HealthResponse struct {
	Status     string `json:"status"`
	Monitoring bool   `json:"monitoring"`
}

func (twh *TwitchHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	res := HealthResponse{Status: "ok"}
	if presence := twh.currentPresence(); presence != nil {
		res.Monitoring = presence.Ready()
	}

	middleware.WriteSuccessData(w, r, res)
}
