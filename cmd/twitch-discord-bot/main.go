package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	discordClient "twitch_discord_bot/internal/client/discord-client"
	twitchClient "twitch_discord_bot/internal/client/twitch-client"
	twitchOauthClient "twitch_discord_bot/internal/client/twitch-oauth-client"
	"twitch_discord_bot/internal/config"
	"twitch_discord_bot/internal/metrics"

	discordHandler "twitch_discord_bot/internal/handlers/discord"
	twitchHandler "twitch_discord_bot/internal/handlers/twitch"

	broadcastService "twitch_discord_bot/internal/service/broadcast"
	configReloadService "twitch_discord_bot/internal/service/config_reload"
	notificationService "twitch_discord_bot/internal/service/notification"
	presenceService "twitch_discord_bot/internal/service/presence"
	twitchService "twitch_discord_bot/internal/service/twitch"
	twitchNotificationService "twitch_discord_bot/internal/service/twitch_notification"
	twitchTokenService "twitch_discord_bot/internal/service/twitch_token"

	dbRepository "twitch_discord_bot/db/repository"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	_ "github.com/lib/pq"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("cannot load config: %v", err)
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	logrus.SetLevel(cfg.ParsedLogLevel())

	metrics.Init()

	if cfg.DiscordToken == "" {
		logrus.Fatal("DISCORD_BOT_TOKEN is required")
	}

	var tokenRepo twitchTokenService.TokenRepository
	if cfg.DBConn != "" {
		db, err := sqlx.Connect("postgres", cfg.DBConn)
		if err != nil {
			logrus.Fatalf("cannot connect to db: %v", err)
		}
		defer db.Close()

		tokenRepo = dbRepository.NewDBRepository(db)
	} else {
		logrus.Info("DB_CONN is not set, twitch tokens are kept in memory")
	}

	dClient, err := discordClient.NewDiscordClient(cfg.DiscordToken)
	if err != nil {
		logrus.Fatalf("cannot init discord client: %v", err)
	}

	var (
		currentMonitor atomic.Pointer[presenceService.Monitor]
		currentTwitch  atomic.Pointer[twitchService.TwitchService]
	)

	buildTask := func(cfg *config.Config) (configReloadService.Task, error) {
		oauthClient := twitchOauthClient.NewTwitchOauthClient(cfg.TwitchClientID, cfg.TwitchClientSecret)
		tts := twitchTokenService.NewTwitchTokenService(tokenRepo, oauthClient)
		tClient := twitchClient.NewTwitchClient(cfg.TwitchClientID, tts)

		monitor := presenceService.NewMonitor(tClient, cfg.TwitchUsernames)
		dispatcher := notificationService.NewDispatcher(dClient, cfg.DiscordChannelID, cfg.NotificationRoleID)
		currentMonitor.Store(monitor)
		currentTwitch.Store(twitchService.NewService(tClient))

		return twitchNotificationService.NewTwitchNotificationTask(monitor, dispatcher, cfg.CheckInterval), nil
	}

	reloadService := configReloadService.NewConfigReloadService(ctx, cfg, buildTask)

	presenceStatus := func() twitchHandler.PresenceStatus {
		if reloadService.Task() == nil {
			return nil
		}
		if monitor := currentMonitor.Load(); monitor != nil {
			return monitor
		}
		return nil
	}

	twitchLookup := func() twitchHandler.TwitchLookup {
		if reloadService.Task() == nil {
			return nil
		}
		if tws := currentTwitch.Load(); tws != nil {
			return tws
		}
		return nil
	}

	bs := broadcastService.NewBroadcastService(dClient)
	templates := broadcastService.NewTemplateStore(cfg.BroadcastTemplateDir)

	dHandler := discordHandler.NewDiscordHandler(ctx, dClient.Session(), bs, templates, reloadService, dClient)
	dHandler.Register(dClient.Session())

	if err := dClient.Open(); err != nil {
		logrus.Fatalf("cannot open discord session: %v", err)
	}
	defer dClient.Close()

	summary := reloadService.Activate(ctx)
	if !summary.NotificationsEnabled {
		logrus.Warn("twitch stream notifications are disabled, the bot keeps running")
	}

	var srv *http.Server
	if cfg.DebugAddr != "" {
		srv = &http.Server{
			Handler:      twitchHandler.NewDebugRouter(twitchHandler.NewTwitchHandler(presenceStatus, twitchLookup, reloadService)),
			Addr:         cfg.DebugAddr,
			WriteTimeout: 30 * time.Second,
			ReadTimeout:  5 * time.Second,
		}

		go func() {
			logrus.Infof("debug server start on %s", cfg.DebugAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logrus.Errorf("debug server error: %v", err)
			}
		}()
	}

	<-ctx.Done()
	logrus.Info("shutting down...")

	reloadService.Shutdown()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("debug server shutdown error: %v", err)
		}
	}
}
