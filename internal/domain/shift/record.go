package shift

import (
	"fmt"
	"sync"
	"time"

	vo "github.com/shopfloor-io/shopfloor/internal/domain/shift/valueobjects"
)

// Record is the shift ledger aggregate: the running production counters for
// one (machine, operator, shiftDate, shiftType) window. Total production is
// monotonic within a record; archived records are immutable.
type Record struct {
	id                 uint
	machineID          uint
	operatorID         uint
	shiftDate          time.Time
	shiftType          vo.ShiftType
	startTime          time.Time
	endTime            *time.Time
	totalProduction    int
	targetProduction   int
	efficiency         float64
	runtimeMinutes     int
	downtimeMinutes    int
	qualityTestsCount  int
	approvedTestsCount int
	handoverNote       string
	isArchived         bool
	createdAt          time.Time
	updatedAt          time.Time
	events             []interface{}
	mu                 sync.RWMutex
}

// NewRecord opens a fresh zeroed shift record. shiftDate must be the plant
// calendar date the shift started on (night shifts spanning midnight keep
// their start date).
func NewRecord(machineID, operatorID uint, shiftDate time.Time, shiftType vo.ShiftType, startTime time.Time, targetProduction int) (*Record, error) {
	if machineID == 0 {
		return nil, fmt.Errorf("machine ID is required")
	}
	if operatorID == 0 {
		return nil, fmt.Errorf("operator ID is required")
	}
	if !shiftType.IsValid() {
		return nil, fmt.Errorf("invalid shift type")
	}
	if shiftDate.IsZero() {
		return nil, fmt.Errorf("shift date is required")
	}
	if targetProduction < 0 {
		return nil, fmt.Errorf("target production cannot be negative")
	}

	now := time.Now().UTC()
	r := &Record{
		machineID:        machineID,
		operatorID:       operatorID,
		shiftDate:        shiftDate,
		shiftType:        shiftType,
		startTime:        startTime,
		targetProduction: targetProduction,
		createdAt:        now,
		updatedAt:        now,
		events:           []interface{}{},
	}

	return r, nil
}

func ReconstructRecord(
	recordID uint,
	machineID, operatorID uint,
	shiftDate time.Time,
	shiftType vo.ShiftType,
	startTime time.Time,
	endTime *time.Time,
	totalProduction, targetProduction int,
	efficiency float64,
	runtimeMinutes, downtimeMinutes int,
	qualityTestsCount, approvedTestsCount int,
	handoverNote string,
	isArchived bool,
	createdAt, updatedAt time.Time,
) (*Record, error) {
	if recordID == 0 {
		return nil, fmt.Errorf("record ID cannot be zero")
	}
	if machineID == 0 || operatorID == 0 {
		return nil, fmt.Errorf("machine and operator IDs are required")
	}
	if !shiftType.IsValid() {
		return nil, fmt.Errorf("invalid shift type")
	}

	return &Record{
		id:                 recordID,
		machineID:          machineID,
		operatorID:         operatorID,
		shiftDate:          shiftDate,
		shiftType:          shiftType,
		startTime:          startTime,
		endTime:            endTime,
		totalProduction:    totalProduction,
		targetProduction:   targetProduction,
		efficiency:         efficiency,
		runtimeMinutes:     runtimeMinutes,
		downtimeMinutes:    downtimeMinutes,
		qualityTestsCount:  qualityTestsCount,
		approvedTestsCount: approvedTestsCount,
		handoverNote:       handoverNote,
		isArchived:         isArchived,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		events:             []interface{}{},
	}, nil
}

func (r *Record) ID() uint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.id
}

func (r *Record) MachineID() uint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.machineID
}

func (r *Record) OperatorID() uint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.operatorID
}

func (r *Record) ShiftDate() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.shiftDate
}

func (r *Record) ShiftType() vo.ShiftType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.shiftType
}

func (r *Record) StartTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.startTime
}

func (r *Record) EndTime() *time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.endTime
}

func (r *Record) TotalProduction() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalProduction
}

func (r *Record) TargetProduction() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.targetProduction
}

func (r *Record) Efficiency() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.efficiency
}

func (r *Record) RuntimeMinutes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runtimeMinutes
}

func (r *Record) DowntimeMinutes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.downtimeMinutes
}

func (r *Record) QualityTestsCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.qualityTestsCount
}

func (r *Record) ApprovedTestsCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.approvedTestsCount
}

func (r *Record) HandoverNote() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handoverNote
}

func (r *Record) IsArchived() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isArchived
}

func (r *Record) CreatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.createdAt
}

func (r *Record) UpdatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updatedAt
}

func (r *Record) SetID(recordID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.id != 0 {
		return fmt.Errorf("record ID is already set")
	}
	if recordID == 0 {
		return fmt.Errorf("record ID cannot be zero")
	}
	r.id = recordID
	return nil
}

// ApplyDelta merges an incremental production delta into the record and
// recomputes efficiency. Deltas are additive, so a retried merge keyed by
// the same delta event never double-counts at this level.
func (r *Record) ApplyDelta(producedUnits, runtimeMinutes, downtimeMinutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isArchived {
		return fmt.Errorf("cannot apply delta to an archived shift record")
	}
	if producedUnits < 0 {
		return fmt.Errorf("produced units cannot be negative")
	}
	if runtimeMinutes < 0 || downtimeMinutes < 0 {
		return fmt.Errorf("runtime and downtime cannot be negative")
	}

	r.totalProduction += producedUnits
	r.runtimeMinutes += runtimeMinutes
	r.downtimeMinutes += downtimeMinutes
	r.recomputeEfficiencyUnsafe()
	r.updatedAt = time.Now().UTC()

	r.recordEventUnsafe(NewProductionRecordedEvent(r.machineID, r.operatorID, r.id, producedUnits, r.updatedAt))

	return nil
}

func (r *Record) recomputeEfficiencyUnsafe() {
	total := r.runtimeMinutes + r.downtimeMinutes
	if total == 0 {
		r.efficiency = 0
		return
	}
	r.efficiency = float64(r.runtimeMinutes) / float64(total) * 100
}

// RecordQualityTest bumps the shift's test counters.
func (r *Record) RecordQualityTest(approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isArchived {
		return fmt.Errorf("cannot record quality test on an archived shift record")
	}

	r.qualityTestsCount++
	if approved {
		r.approvedTestsCount++
	}
	r.updatedAt = time.Now().UTC()
	return nil
}

// SetHandoverNote attaches the operator's markdown handover note.
func (r *Record) SetHandoverNote(note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isArchived {
		return fmt.Errorf("cannot edit an archived shift record")
	}
	if len(note) > 5000 {
		return fmt.Errorf("handover note exceeds maximum length of 5000 characters")
	}

	r.handoverNote = note
	r.updatedAt = time.Now().UTC()
	return nil
}

// Archive closes the record. Archived records are immutable; archiving
// twice is an error so callers can detect double rollovers.
func (r *Record) Archive(endTime time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isArchived {
		return fmt.Errorf("shift record is already archived")
	}

	r.isArchived = true
	end := endTime
	r.endTime = &end
	r.updatedAt = time.Now().UTC()

	r.recordEventUnsafe(NewArchivedEvent(r.id, r.machineID, r.operatorID, r.shiftType, r.updatedAt))

	return nil
}

func (r *Record) recordEventUnsafe(event interface{}) {
	r.events = append(r.events, event)
}

func (r *Record) GetEvents() []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]interface{}, len(r.events))
	copy(events, r.events)
	r.events = []interface{}{}
	return events
}
