package twitch_handler

import (
	"net/http"

	"twitch_discord_bot/internal/middleware"
)

// GetStreamers returns the resolved login -> user id mapping.
func (twh *TwitchHandler) GetStreamers(w http.ResponseWriter, r *http.Request) {
	presence := twh.currentPresence()
	if presence == nil {
		middleware.WriteErrorResponse(w, r, http.StatusServiceUnavailable, monitoringDisabled)
		return
	}

	middleware.WriteSuccessData(w, r, presence.Streamers())
}
