package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type ArchiveElapsedShiftsCommand struct {
	BatchSize int
}

type ArchiveElapsedShiftsResult struct {
	Scanned  int `json:"scanned"`
	Archived int `json:"archived"`
	Failed   int `json:"failed"`
}

const defaultArchiveBatchSize = 200

// ArchiveElapsedShiftsUseCase is the worker batch job closing open records
// whose shift window has fully elapsed: the ones that never saw another
// production event to trigger rollover. Archiving is per-record; one
// failure never aborts the batch.
type ArchiveElapsedShiftsUseCase struct {
	recordRepo      shift.RecordRepository
	resolver        *shift.Resolver
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewArchiveElapsedShiftsUseCase(
	recordRepo shift.RecordRepository,
	resolver *shift.Resolver,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *ArchiveElapsedShiftsUseCase {
	return &ArchiveElapsedShiftsUseCase{
		recordRepo:      recordRepo,
		resolver:        resolver,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *ArchiveElapsedShiftsUseCase) Execute(ctx context.Context, cmd ArchiveElapsedShiftsCommand) (*ArchiveElapsedShiftsResult, error) {
	batchSize := cmd.BatchSize
	if batchSize <= 0 {
		batchSize = defaultArchiveBatchSize
	}

	now := biztime.NowUTC()
	candidates, err := uc.recordRepo.ListOpenEndedBefore(ctx, now, batchSize)
	if err != nil {
		uc.logger.Errorw("failed to list open shift records", "error", err)
		return nil, err
	}

	result := &ArchiveElapsedShiftsResult{Scanned: len(candidates)}
	for _, record := range candidates {
		end := uc.resolver.ShiftEnd(record.StartTime())
		if now.Before(end) {
			continue
		}

		if err := record.Archive(end); err != nil {
			result.Failed++
			continue
		}
		if err := uc.recordRepo.Update(ctx, record); err != nil {
			uc.logger.Warnw("failed to archive elapsed shift", "error", err, "record_id", record.ID())
			result.Failed++
			continue
		}

		for _, event := range record.GetEvents() {
			if domainEvent, ok := event.(events.DomainEvent); ok {
				if err := uc.eventDispatcher.Publish(domainEvent); err != nil {
					uc.logger.Warnw("failed to dispatch event", "error", err)
				}
			}
		}
		result.Archived++
	}

	if result.Archived > 0 || result.Failed > 0 {
		uc.logger.Infow("elapsed shifts archived",
			"scanned", result.Scanned,
			"archived", result.Archived,
			"failed", result.Failed)
	}

	return result, nil
}
