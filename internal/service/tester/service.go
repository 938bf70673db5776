package tester

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
	repo "github.com/jwhitcraft/precast-tracker/internal/repository/mongodb"
)

// Service serves the tester worklist and records submitted break results.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new tester service instance.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repository,
		logger: logger,
		now:    time.Now,
	}
}

// GetQueue returns the combined worklist up to endDate: overdue untested
// entries plus everything due between today and the horizon.
func (s *Service) GetQueue(ctx context.Context, endDate time.Time) ([]models.QueueRow, error) {
	snapshot, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	rows := buildQueue(snapshot, s.today(), endDate)
	s.logger.Debug("test queue built", zap.Int("rows", len(rows)), zap.Time("end_date", endDate))
	return rows, nil
}

// GetQueueItem returns the queue projection of a single schedule entry.
func (s *Service) GetQueueItem(ctx context.Context, testSetDayID int) (*models.QueueRow, error) {
	snapshot, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	row := queueItem(snapshot, testSetDayID)
	if row == nil {
		return nil, fmt.Errorf("test set day %d: %w", testSetDayID, models.ErrNotFound)
	}
	return row, nil
}

// GetUpcoming returns every entry due within the next `days` days, starting
// tomorrow and running through the end of the last day.
func (s *Service) GetUpcoming(ctx context.Context, days int) ([]models.QueueRow, error) {
	snapshot, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	today := s.today()
	start := today.AddDate(0, 0, 1)
	end := today.AddDate(0, 0, days+1).Add(-time.Nanosecond)

	return buildQueueBetween(snapshot, start, end), nil
}

// GetUntestedPlacements lists placements cast within the last daysBack days
// that never got tests scheduled.
func (s *Service) GetUntestedPlacements(ctx context.Context, daysBack int) ([]models.UntestedPlacement, error) {
	snapshot, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	cutoff := s.today().AddDate(0, 0, -daysBack)
	return untestedPlacements(snapshot, cutoff), nil
}

// GetTestDayDetails returns the result-entry view of one schedule entry.
func (s *Service) GetTestDayDetails(ctx context.Context, testSetDayID int) (*models.TestDayDetails, error) {
	snapshot, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	details := testDayDetails(snapshot, testSetDayID)
	if details == nil {
		return nil, fmt.Errorf("test set day %d: %w", testSetDayID, models.ErrNotFound)
	}
	return details, nil
}

// SaveTestDayResults validates and applies a tester's submitted breaks. The
// tested date must not precede the cast date and every cylinder must belong
// to the target schedule entry; any violation aborts the whole write. On
// success the refreshed queue projection is returned.
func (s *Service) SaveTestDayResults(ctx context.Context, req models.SaveTestDayRequest) (*models.QueueRow, error) {
	snapshot, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	day := snapshot.TestSetDay(req.TestSetDayID)
	if day == nil {
		return nil, fmt.Errorf("test set day %d: %w", req.TestSetDayID, models.ErrNotFound)
	}

	castDate := castDateOf(day)
	if dateOnly(req.DateTested).Before(dateOnly(castDate)) {
		return nil, fmt.Errorf("%w: test date %s precedes cast date %s",
			models.ErrValidation, req.DateTested.Format("2006-01-02"), castDate.Format("2006-01-02"))
	}

	valid := make(map[int]*models.TestCylinder, len(day.Cylinders))
	for _, cyl := range day.Cylinders {
		valid[cyl.TestCylinderID] = cyl
	}
	for _, cb := range req.CylinderBreaks {
		if _, ok := valid[cb.TestCylinderID]; !ok {
			return nil, fmt.Errorf("%w: cylinder %d does not belong to test set day %d",
				models.ErrValidation, cb.TestCylinderID, req.TestSetDayID)
		}
	}

	dateTested := req.DateTested
	day.DateTested = &dateTested
	day.Comments = req.Comments

	updated := make([]*models.TestCylinder, 0, len(req.CylinderBreaks))
	for _, cb := range req.CylinderBreaks {
		cyl := valid[cb.TestCylinderID]
		breakPsi := cb.BreakPsi
		cyl.BreakPsi = &breakPsi
		updated = append(updated, cyl)
	}

	if err := s.repo.SaveTestDayResult(ctx, day, updated); err != nil {
		return nil, fmt.Errorf("persist test day result: %w", err)
	}

	s.logger.Info("test day results saved",
		zap.Int("test_set_day_id", req.TestSetDayID),
		zap.Int("cylinders", len(updated)))

	row := queueItem(snapshot, req.TestSetDayID)
	if row == nil {
		return nil, fmt.Errorf("reload queue item %d after save", req.TestSetDayID)
	}
	return row, nil
}

func (s *Service) today() time.Time {
	return dateOnly(s.now())
}

func castDateOf(day *models.TestSetDay) time.Time {
	if day.TestSet != nil && day.TestSet.Placement != nil &&
		day.TestSet.Placement.MixBatch != nil && day.TestSet.Placement.MixBatch.ProductionDay != nil {
		return day.TestSet.Placement.MixBatch.ProductionDay.Date
	}
	return time.Time{}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
