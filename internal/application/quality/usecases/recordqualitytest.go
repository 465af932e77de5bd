package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/alert"
	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type RecordQualityTestCommand struct {
	MachineSID string
	ConfigSID  string
	OperatorID uint
	Approved   bool
	Notes      string
}

type RecordQualityTestResult struct {
	MachineSID    string `json:"machine_sid"`
	ConfigSID     string `json:"config_sid"`
	Approved      bool   `json:"approved"`
	TestDate      string `json:"test_date"`
	AlertResolved bool   `json:"alert_resolved"`
}

// RecordQualityTestUseCase appends a test to the log, advancing the gate
// baseline for both conditions, bumps the open shift's test counters, and
// resolves the config's active alert when the test passes.
type RecordQualityTestUseCase struct {
	machineRepo machine.Repository
	configRepo  quality.GateConfigRepository
	testRepo    quality.TestRecordRepository
	recordRepo  shift.RecordRepository
	alertRepo   alert.Repository
	logger      logger.Interface
}

func NewRecordQualityTestUseCase(
	machineRepo machine.Repository,
	configRepo quality.GateConfigRepository,
	testRepo quality.TestRecordRepository,
	recordRepo shift.RecordRepository,
	alertRepo alert.Repository,
	logger logger.Interface,
) *RecordQualityTestUseCase {
	return &RecordQualityTestUseCase{
		machineRepo: machineRepo,
		configRepo:  configRepo,
		testRepo:    testRepo,
		recordRepo:  recordRepo,
		alertRepo:   alertRepo,
		logger:      logger,
	}
}

func (uc *RecordQualityTestUseCase) Execute(ctx context.Context, cmd RecordQualityTestCommand) (*RecordQualityTestResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	m, err := uc.machineRepo.GetBySID(ctx, cmd.MachineSID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_sid", cmd.MachineSID)
		return nil, errors.NewNotFoundError("machine not found")
	}

	cfg, err := uc.configRepo.GetBySID(ctx, cmd.ConfigSID)
	if err != nil {
		uc.logger.Errorw("failed to find gate config", "error", err, "config_sid", cmd.ConfigSID)
		return nil, errors.NewNotFoundError("gate config not found")
	}
	if cfg.MachineID() != m.ID() {
		return nil, errors.NewValidationError("gate config belongs to a different machine")
	}

	testDate := biztime.NowUTC()
	record, err := quality.NewTestRecord(m.ID(), cfg.ID(), cmd.OperatorID, testDate, cmd.Approved, cmd.Notes)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.testRepo.Append(ctx, record); err != nil {
		uc.logger.Errorw("failed to append test record", "error", err)
		return nil, errors.NewInternalError("failed to record quality test")
	}

	uc.bumpShiftCounters(ctx, m.ID(), cmd.OperatorID, cmd.Approved)

	result := &RecordQualityTestResult{
		MachineSID: cmd.MachineSID,
		ConfigSID:  cmd.ConfigSID,
		Approved:   cmd.Approved,
		TestDate:   testDate.Format("2006-01-02T15:04:05Z07:00"),
	}

	if cmd.Approved {
		result.AlertResolved = uc.resolveActiveAlert(ctx, m.ID(), cfg.ID())
	}

	uc.logger.Infow("quality test recorded",
		"machine_sid", cmd.MachineSID,
		"config_sid", cmd.ConfigSID,
		"approved", cmd.Approved)

	return result, nil
}

// bumpShiftCounters updates the open shift record's test tallies. The test
// log is the source of truth for gate baselines, so a missing open shift
// only costs per-shift statistics and is not an error.
func (uc *RecordQualityTestUseCase) bumpShiftCounters(ctx context.Context, machineID, operatorID uint, approved bool) {
	open, err := uc.recordRepo.FindOpen(ctx, machineID, operatorID)
	if err != nil || open == nil {
		return
	}
	if err := open.RecordQualityTest(approved); err != nil {
		return
	}
	if err := uc.recordRepo.Update(ctx, open); err != nil {
		uc.logger.Warnw("failed to update shift test counters", "error", err, "record_id", open.ID())
	}
}

func (uc *RecordQualityTestUseCase) resolveActiveAlert(ctx context.Context, machineID, configID uint) bool {
	active, err := uc.alertRepo.FindActive(ctx, machineID, configID)
	if err != nil || active == nil {
		return false
	}
	if err := active.Resolve(); err != nil {
		return false
	}
	if err := uc.alertRepo.Update(ctx, active); err != nil {
		uc.logger.Warnw("failed to resolve alert", "error", err, "alert_sid", active.SID())
		return false
	}
	uc.logger.Infow("alert resolved by passing test", "alert_sid", active.SID())
	return true
}

func (uc *RecordQualityTestUseCase) validateCommand(cmd RecordQualityTestCommand) error {
	if cmd.MachineSID == "" {
		return errors.NewValidationError("machine SID is required")
	}
	if cmd.ConfigSID == "" {
		return errors.NewValidationError("config SID is required")
	}
	if cmd.OperatorID == 0 {
		return errors.NewValidationError("operator ID is required")
	}
	return nil
}
