package twitch_handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/middleware"
	"twitch_discord_bot/internal/models"
)

func (twh *TwitchHandler) GetUser(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()

	lookup := twh.currentLookup()
	if lookup == nil {
		middleware.WriteErrorResponse(w, r, http.StatusServiceUnavailable, monitoringDisabled)
		return
	}

	res, err := lookup.GetUser(ctx, mux.Vars(r)["login"])
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			middleware.WriteErrorResponse(w, r, http.StatusNotFound, err.Error())
			return
		}
		logrus.Error(err)
		middleware.WriteErrorResponse(w, r, http.StatusBadGateway, err.Error())
		return
	}

	middleware.WriteSuccessData(w, r, res)
}
