// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	alertingUC "github.com/shopfloor-io/shopfloor/internal/application/alerting/usecases"
	productionUC "github.com/shopfloor-io/shopfloor/internal/application/production/usecases"
	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

const sweepPageSize = 100

// SchedulerManager manages all scheduled jobs using gocron v2.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
// It initializes gocron with the plant timezone so cron expressions follow
// plant wall-clock time.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterShiftArchiveJob registers the batch job that closes open shift
// records whose window has fully elapsed. These are the records that never
// saw another production event to trigger a rollover.
func (m *SchedulerManager) RegisterShiftArchiveJob(
	archiver productionUC.ArchiveElapsedShiftsExecutor,
	interval time.Duration,
) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.archiveElapsedShifts(ctx, archiver)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("production", "archive"),
		gocron.WithName("shift-archiver"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered shift archive job", "interval", interval)
	return nil
}

func (m *SchedulerManager) archiveElapsedShifts(ctx context.Context, archiver productionUC.ArchiveElapsedShiftsExecutor) {
	m.logger.Debugw("shift archive sweep started")

	startTime := biztime.NowUTC()

	result, err := archiver.Execute(ctx, productionUC.ArchiveElapsedShiftsCommand{})
	if err != nil {
		m.logger.Errorw("shift archive sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if result.Archived > 0 || result.Failed > 0 {
		m.logger.Infow("shift archive sweep completed",
			"scanned", result.Scanned,
			"archived", result.Archived,
			"failed", result.Failed,
			"duration", time.Since(startTime),
		)
	}
}

// RegisterGateSweepJob registers the quality gate sweep that walks every
// machine and dispatches alerts for pending gates. Per-machine failures are
// logged and never abort the sweep.
func (m *SchedulerManager) RegisterGateSweepJob(
	machineRepo machine.Repository,
	dispatcher alertingUC.DispatchAlertsExecutor,
	interval time.Duration,
) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.sweepGates(ctx, machineRepo, dispatcher)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("alerting", "gate-sweep"),
		gocron.WithName("gate-sweeper"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered gate sweep job", "interval", interval)
	return nil
}

func (m *SchedulerManager) sweepGates(ctx context.Context, machineRepo machine.Repository, dispatcher alertingUC.DispatchAlertsExecutor) {
	m.logger.Debugw("gate sweep started")

	startTime := biztime.NowUTC()
	raised := 0
	failed := 0

	for offset := 0; ; offset += sweepPageSize {
		machines, _, err := machineRepo.List(ctx, sweepPageSize, offset)
		if err != nil {
			m.logger.Errorw("gate sweep failed to list machines", "error", err, "offset", offset)
			return
		}
		if len(machines) == 0 {
			break
		}

		for _, mach := range machines {
			result, err := dispatcher.Execute(ctx, alertingUC.DispatchAlertsCommand{MachineSID: mach.SID()})
			if err != nil {
				failed++
				m.logger.Errorw("gate sweep failed for machine",
					"error", err,
					"machine_sid", mach.SID(),
				)
				continue
			}
			raised += len(result.Raised)
		}

		if len(machines) < sweepPageSize {
			break
		}
	}

	if raised > 0 || failed > 0 {
		m.logger.Infow("gate sweep completed",
			"raised", raised,
			"failed", failed,
			"duration", time.Since(startTime),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
