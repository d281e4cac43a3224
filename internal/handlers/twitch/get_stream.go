package twitch_handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/middleware"
	"twitch_discord_bot/internal/models"
)

const monitoringDisabled = "stream monitoring is disabled"

type LiveResponse struct {
	Live []string `json:"live"`
}

func (twh *TwitchHandler) GetLive(w http.ResponseWriter, r *http.Request) {
	presence := twh.currentPresence()
	if presence == nil {
		middleware.WriteErrorResponse(w, r, http.StatusServiceUnavailable, monitoringDisabled)
		return
	}

	middleware.WriteSuccessData(w, r, LiveResponse{Live: presence.LiveSet()})
}

func (twh *TwitchHandler) GetActiveStreamInfoByUser(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()

	lookup := twh.currentLookup()
	if lookup == nil {
		middleware.WriteErrorResponse(w, r, http.StatusServiceUnavailable, monitoringDisabled)
		return
	}

	res, err := lookup.GetActiveStreamInfoByUser(ctx, mux.Vars(r)["login"])
	if err != nil {
		if errors.Is(err, models.ErrStreamNotLive) {
			middleware.WriteErrorResponse(w, r, http.StatusNotFound, err.Error())
			return
		}
		logrus.Error(err)
		middleware.WriteErrorResponse(w, r, http.StatusBadGateway, err.Error())
		return
	}

	middleware.WriteSuccessData(w, r, res)
}
