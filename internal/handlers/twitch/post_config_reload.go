package twitch_handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/middleware"
)

func (twh *TwitchHandler) PostConfigReload(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()

	res, err := twh.reloader.Reload(ctx)
	if err != nil {
		logrus.Error(err)
		middleware.WriteErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.WriteSuccessData(w, r, res)
}
