package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/config"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/database"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/dispatch"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/migration"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/notify"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/repository"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/rotation"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/scheduler"
	httpRouter "github.com/shopfloor-io/shopfloor/internal/interfaces/http"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
	disableScheduler   bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the shopfloor HTTP server with the background shift archiver and gate sweeper.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")
	cmd.Flags().BoolVar(&disableScheduler, "no-scheduler", false, "Disable the in-process background jobs")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	if err := biztime.Init(cfg.Shift.Timezone); err != nil {
		return fmt.Errorf("failed to load plant timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := handleMigrations(env, log); err != nil {
		log.Fatalw("migration handling failed", "error", err)
	}

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

	schedule, err := rotation.LoadSchedule(cfg.Shift.RotationFile)
	if err != nil {
		log.Fatalw("failed to load rotation schedule", "error", err, "path", cfg.Shift.RotationFile)
	}

	eventDispatcher := events.NewInMemoryEventDispatcher(100)
	if err := eventDispatcher.Start(); err != nil {
		log.Fatalw("failed to start event dispatcher", "error", err)
	}
	defer func() {
		if err := eventDispatcher.Stop(); err != nil {
			log.Errorw("failed to stop event dispatcher", "error", err)
		}
	}()

	alertRepo := repository.NewAlertRepository(database.Get())
	notifier := notify.NewMailNotifier(cfg.Mail, alertRepo, log)
	if err := notifier.Subscribe(eventDispatcher); err != nil {
		log.Errorw("failed to subscribe mail notifier", "error", err)
	}

	router, err := httpRouter.NewRouter(database.Get(), redisClient, schedule, eventDispatcher, cfg, log)
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}
	router.SetupRoutes()

	// Gates are evaluated on every recorded delta; the periodic sweep below
	// only backstops machines that stop reporting.
	trigger := dispatch.NewTrigger(router.MachineRepo(), router.DispatchUC(), log)
	if err := trigger.Subscribe(eventDispatcher); err != nil {
		log.Errorw("failed to subscribe dispatch trigger", "error", err)
	}

	if !disableScheduler {
		sched, err := scheduler.NewSchedulerManager(log)
		if err != nil {
			log.Fatalw("failed to create scheduler", "error", err)
		}
		if err := sched.RegisterShiftArchiveJob(
			router.ArchiveUC(),
			time.Duration(cfg.Worker.ArchiveIntervalMinutes)*time.Minute,
		); err != nil {
			log.Fatalw("failed to register shift archive job", "error", err)
		}
		if err := sched.RegisterGateSweepJob(
			router.MachineRepo(),
			router.DispatchUC(),
			time.Duration(cfg.Worker.GateSweepIntervalMinutes)*time.Minute,
		); err != nil {
			log.Fatalw("failed to register gate sweep job", "error", err)
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				log.Errorw("failed to stop scheduler", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server exited gracefully")
	return nil
}

func handleMigrations(environment string, log logger.Interface) error {
	if skipMigrationCheck && !autoMigrate {
		log.Info("skipping migration check")
		return nil
	}

	if autoMigrate {
		if environment == "production" {
			log.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}

		log.Info("running auto-migration")
		migrationManager := migration.NewManager(environment)
		if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Info("auto-migration completed successfully")
	}

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
