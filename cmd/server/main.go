package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-planner-backend/api"
	"team-planner-backend/pkg/config"
	"team-planner-backend/pkg/database"
	"team-planner-backend/pkg/events"
	"team-planner-backend/pkg/logger"
	"team-planner-backend/pkg/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	records, err := database.NewRecordStore(database.StoreConfig{
		Driver:      cfg.StoreDriver,
		DataDir:     cfg.DataDir,
		PostgresDSN: cfg.PostgresDSN,
		SQLitePath:  cfg.SQLitePath,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("record store init failed")
	}
	store := database.NewStore(records)
	defer store.Close()

	if err := records.HealthCheck(); err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("record store unhealthy")
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("record store ready")

	bus := events.NewBus()
	identity := services.NewIdentityService(store, log)
	tasks := services.NewTaskService(store, bus, cfg.LegacyOwnerlessTasks, log)
	reminders := services.NewReminderService(store, tasks, log)
	orgs := services.NewOrgService(store, tasks, services.StaticPresence{}, log)
	schedule := services.NewScheduleService(tasks)

	if cfg.SeedDemo {
		if err := services.SeedDemo(store, log); err != nil {
			log.Error().Err(err).Msg("demo seeding failed")
		}
	}

	// Task mutations trigger an immediate scan so reminders created inside
	// the current window fire without waiting for the next tick.
	bus.Subscribe(func() {
		reminders.Scan(time.Now())
	})

	// Reminder poller: fixed interval, one scan at a time.
	scheduler := services.NewScheduler(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.ReminderInterval, func() {
		reminders.Scan(time.Now())
	}); err != nil {
		log.Fatal().Err(err).Msg("scheduling reminder scan failed")
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := api.NewRouter(cfg, log, api.Deps{
		Identity:  identity,
		Tasks:     tasks,
		Orgs:      orgs,
		Schedule:  schedule,
		Reminders: reminders,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
