package twitch_handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"twitch_discord_bot/internal/middleware"
)

func NewDebugRouter(twh *TwitchHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LogRequests)

	router.HandleFunc("/health", twh.GetHealth).Methods(http.MethodGet)
	router.HandleFunc("/twitch/live", twh.GetLive).Methods(http.MethodGet)
	router.HandleFunc("/twitch/streamers", twh.GetStreamers).Methods(http.MethodGet)
	router.HandleFunc("/twitch/user/{login}", twh.GetUser).Methods(http.MethodGet)
	router.HandleFunc("/twitch/stream/{login}", twh.GetActiveStreamInfoByUser).Methods(http.MethodGet)
	router.HandleFunc("/config/reload", twh.PostConfigReload).Methods(http.MethodPost)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}
