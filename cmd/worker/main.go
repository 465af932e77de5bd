package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	alertingUC "github.com/shopfloor-io/shopfloor/internal/application/alerting/usecases"
	productionUC "github.com/shopfloor-io/shopfloor/internal/application/production/usecases"
	qualitySvc "github.com/shopfloor-io/shopfloor/internal/application/quality/services"
	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/cache"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/config"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/database"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/notify"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/repository"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/scheduler"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

// The worker runs the shift archiver and gate sweeper without the HTTP
// server, for deployments that separate the API from background jobs.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting shopfloor worker", "environment", env)

	if err := biztime.Init(cfg.Shift.Timezone); err != nil {
		log.Fatalw("failed to load plant timezone", "error", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	eventDispatcher := events.NewInMemoryEventDispatcher(100)
	if err := eventDispatcher.Start(); err != nil {
		log.Fatalw("failed to start event dispatcher", "error", err)
	}
	defer func() {
		if err := eventDispatcher.Stop(); err != nil {
			log.Errorw("failed to stop event dispatcher", "error", err)
		}
	}()

	machineRepo := repository.NewMachineRepository(database.Get())
	recordRepo := repository.NewShiftRecordRepository(database.Get())
	deltaRepo := repository.NewProductionDeltaRepository(database.Get())
	configRepo := repository.NewGateConfigRepository(database.Get())
	testRepo := repository.NewTestRecordRepository(database.Get())
	alertRepo := repository.NewAlertRepository(database.Get())

	notifier := notify.NewMailNotifier(cfg.Mail, alertRepo, log)
	if err := notifier.Subscribe(eventDispatcher); err != nil {
		log.Errorw("failed to subscribe mail notifier", "error", err)
	}

	resolver, err := shift.NewResolver(
		cfg.Shift.DayStartHour,
		cfg.Shift.DayEndHour,
		time.Duration(cfg.Shift.TransitionGraceMinutes)*time.Minute,
	)
	if err != nil {
		log.Fatalw("invalid shift configuration", "error", err)
	}

	gateStates := qualitySvc.NewGateStateService(configRepo, testRepo, deltaRepo, log)
	dispatchLock := cache.NewAlertDispatchLock(redisClient)

	archiveUC := productionUC.NewArchiveElapsedShiftsUseCase(recordRepo, resolver, eventDispatcher, log)
	dispatchUC := alertingUC.NewDispatchAlertsUseCase(
		machineRepo, alertRepo, gateStates, dispatchLock,
		time.Duration(cfg.Alert.DispatchLockTTLMinutes)*time.Minute,
		cfg.Alert.TargetRoles, eventDispatcher, log)

	sched, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		log.Fatalw("failed to create scheduler", "error", err)
	}
	if err := sched.RegisterShiftArchiveJob(
		archiveUC,
		time.Duration(cfg.Worker.ArchiveIntervalMinutes)*time.Minute,
	); err != nil {
		log.Fatalw("failed to register shift archive job", "error", err)
	}
	if err := sched.RegisterGateSweepJob(
		machineRepo,
		dispatchUC,
		time.Duration(cfg.Worker.GateSweepIntervalMinutes)*time.Minute,
	); err != nil {
		log.Fatalw("failed to register gate sweep job", "error", err)
	}

	sched.Start()
	log.Infow("worker started",
		"archive_interval_minutes", cfg.Worker.ArchiveIntervalMinutes,
		"gate_sweep_interval_minutes", cfg.Worker.GateSweepIntervalMinutes)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)
	if err := sched.Stop(); err != nil {
		log.Errorw("failed to stop scheduler", "error", err)
	}
	log.Info("worker stopped")
}
