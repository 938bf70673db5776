package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
	repo "github.com/jwhitcraft/precast-tracker/internal/repository/mongodb"
)

// Service produces the denormalized concrete report from the stored entity
// graph.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new report service instance.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// GetReport loads the current snapshot and builds the full report.
func (s *Service) GetReport(ctx context.Context) ([]models.ReportRow, error) {
	snapshot, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	rows := BuildReport(snapshot.TestSets)
	s.logger.Info("concrete report built", zap.Int("rows", len(rows)))
	return rows, nil
}

type reportEntry struct {
	set *models.TestSet
	day *models.TestSetDay
}

// BuildReport produces one report row per (test set, test day) pair in the
// report's canonical order: production date, mix batch, batch-level tests
// before 1-day tests, batching start time, oven id, day number.
func BuildReport(testSets []*models.TestSet) []models.ReportRow {
	suffixes := placementSuffixes(testSets)

	entries := make([]reportEntry, 0, len(testSets))
	for _, ts := range testSets {
		if ts.Placement == nil {
			continue
		}
		for _, day := range ts.Days {
			entries = append(entries, reportEntry{set: ts, day: day})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return lessEntry(entries[i], entries[j])
	})

	rows := make([]models.ReportRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, buildRow(e, suffixes))
	}
	return rows
}

func lessEntry(a, b reportEntry) bool {
	pa, pb := a.set.Placement, b.set.Placement

	da, db := productionDate(pa), productionDate(pb)
	if !da.Equal(db) {
		return da.Before(db)
	}
	if pa.MixBatchID != pb.MixBatchID {
		return pa.MixBatchID < pb.MixBatchID
	}
	// Batch-level tests (7, 28-day) sort before placement-level (1-day) ones.
	oa, ob := a.day.DayNum == 1, b.day.DayNum == 1
	if oa != ob {
		return !oa
	}
	ta, tb := startTimeOrZero(pa), startTimeOrZero(pb)
	if ta != tb {
		return ta < tb
	}
	if pa.OvenID != pb.OvenID {
		return pa.OvenID < pb.OvenID
	}
	return a.day.DayNum < b.day.DayNum
}

func buildRow(e reportEntry, suffixes map[suffixKey]int) models.ReportRow {
	placement := e.set.Placement
	day := e.day
	batch := placement.MixBatch
	pour := placement.Pour

	testID := strconv.Itoa(batch.MixBatchID)
	if day.DayNum == 1 {
		suffix, ok := suffixes[suffixKey{batch.MixBatchID, placement.PlacementID}]
		if !ok {
			suffix = 1
		}
		testID = fmt.Sprintf("%d.%d", batch.MixBatchID, suffix)
	}

	castDate := productionDate(placement)

	var ageOfTest, testingDate string
	switch {
	case day.DateTested != nil:
		ageOfTest = AgeOfTest(castDate, placement.StartTime, day.DateTested)
		testingDate = FormatTestingDate(day.DateTested)
	case day.DayNum == 1:
		// 1-day tests have no scheduled-date fallback.
	default:
		ageOfTest = strconv.Itoa(day.DayNum)
		testingDate = FormatTestingDate(&day.DateDue)
	}

	break1, break2, break3 := breakValues(day.Cylinders)

	row := models.ReportRow{
		TestID:            testID,
		CylinderID:        fmt.Sprintf("%dC", day.DayNum),
		CastingDate:       castDate.Format("01/02/2006"),
		YardsPerBed:       formatVolume(placement.Volume),
		BatchingStartTime: FormatClock(placement.StartTime),
		TruckNo:           truckNumbers(placement.Deliveries),
		PieceType:         placement.PieceType,
		OvenID:            placement.OvenID,
		AgeOfTest:         ageOfTest,
		TestingDate:       testingDate,
		Required:          strconv.Itoa(requiredPsi(batch.MixDesign, day.DayNum)),
		Break1:            break1,
		Break2:            break2,
		Break3:            break3,
		AveragePsi:        averagePsi(day.Cylinders),
		Comments:          day.Comments,
	}

	if batch.MixDesign != nil {
		row.MixDesign = batch.MixDesign.Code
	}
	if pour != nil {
		row.PourID = strconv.Itoa(pour.PourID)
		if pour.Job != nil {
			row.JobID = pour.Job.Code
			row.JobName = pour.Job.Name
		}
		if pour.Bed != nil {
			row.BedID = strconv.Itoa(pour.Bed.BedID)
		}
	}

	return row
}

func productionDate(p *models.Placement) time.Time {
	if p.MixBatch == nil || p.MixBatch.ProductionDay == nil {
		return time.Time{}
	}
	return p.MixBatch.ProductionDay.Date
}

func requiredPsi(md *models.MixDesign, dayNum int) int {
	if md == nil {
		return 0
	}
	for _, req := range md.Requirements {
		if req.TestType == dayNum {
			return req.RequiredPsi
		}
	}
	return 0
}

// truckNumbers joins the delivery truck ids with ", ", numeric values first in
// numeric order, non-numeric values after them in lexical order.
func truckNumbers(deliveries []*models.Delivery) string {
	trucks := make([]string, 0, len(deliveries))
	for _, d := range deliveries {
		trucks = append(trucks, d.TruckID)
	}
	sort.SliceStable(trucks, func(i, j int) bool {
		ki, kj := truckSortKey(trucks[i]), truckSortKey(trucks[j])
		if ki != kj {
			return ki < kj
		}
		return trucks[i] < trucks[j]
	})
	return strings.Join(trucks, ", ")
}

func truckSortKey(truck string) int {
	if n, err := strconv.Atoi(truck); err == nil {
		return n
	}
	return math.MaxInt
}

func breakValues(cylinders []*models.TestCylinder) (string, string, string) {
	var breaks [3]string
	for i := 0; i < 3 && i < len(cylinders); i++ {
		if cylinders[i].BreakPsi != nil {
			breaks[i] = strconv.Itoa(*cylinders[i].BreakPsi)
		}
	}
	return breaks[0], breaks[1], breaks[2]
}

// averagePsi is the mean of the recorded breaks, rounded half away from zero.
func averagePsi(cylinders []*models.TestCylinder) string {
	var sum, count int
	for _, c := range cylinders {
		if c.BreakPsi != nil {
			sum += *c.BreakPsi
			count++
		}
	}
	if count == 0 {
		return ""
	}
	return strconv.Itoa(int(math.Round(float64(sum) / float64(count))))
}
