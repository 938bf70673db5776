package seeder

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
	repo "github.com/jwhitcraft/precast-tracker/internal/repository/mongodb"
)

// Historical report CSV column indexes.
const (
	colTestCode = iota
	colCylinderID
	colCastingDate
	colMixDesign
	colYardsPerBed
	colBedID
	colBatchingStartTime
	colJobID
	colJobName
	colTruckNo
	colPourID
	colPieceType
	colOvenID
	colAgeOfTest
	colTestingDate
	colRequiredPsi
	colBreak1
	colBreak2
	colBreak3
	colAveragePsi
	colComments

	columnCount
)

// Service ingests the plant's historical concrete-report CSV into the
// normalized entity graph.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new seeder service instance.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// SeedFromCSV parses the legacy report file at path and inserts the resulting
// entity graph. Rows that cannot be parsed are skipped with a warning, not
// fatal.
func (s *Service) SeedFromCSV(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed csv: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\uFEFF")))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parse seed csv: %w", err)
	}
	if len(records) > 0 {
		records = records[1:] // header
	}

	b := newGraphBuilder()
	var seeded int
	for i, fields := range records {
		if err := b.addRow(fields); err != nil {
			s.logger.Warn("skipping seed row", zap.Int("line", i+2), zap.Error(err))
			continue
		}
		seeded++
	}

	if err := s.repo.InsertSeedData(ctx, b.data); err != nil {
		return 0, fmt.Errorf("persist seed data: %w", err)
	}

	s.logger.Info("seed completed",
		zap.Int("rows", seeded),
		zap.Int("placements", len(b.data.Placements)),
		zap.Int("test_set_days", len(b.data.TestSetDays)))
	return seeded, nil
}

// graphBuilder accumulates the entity graph while deduplicating shared
// parents. All caches are local to one ingestion run.
type graphBuilder struct {
	data models.SnapshotData

	mixDesigns   map[string]*models.MixDesign
	jobs         map[string]*models.Job
	beds         map[string]*models.Bed
	pours        map[string]*models.Pour
	prodDays     map[string]*models.ProductionDay
	mixBatches   map[string]*models.MixBatch
	placements   map[string]*models.Placement
	requirements map[string]bool
	testSets     map[int]*models.TestSet // by placement id

	nextID int
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{
		mixDesigns:   make(map[string]*models.MixDesign),
		jobs:         make(map[string]*models.Job),
		beds:         make(map[string]*models.Bed),
		pours:        make(map[string]*models.Pour),
		prodDays:     make(map[string]*models.ProductionDay),
		mixBatches:   make(map[string]*models.MixBatch),
		placements:   make(map[string]*models.Placement),
		requirements: make(map[string]bool),
		testSets:     make(map[int]*models.TestSet),
		nextID:       1,
	}
}

func (b *graphBuilder) id() int {
	id := b.nextID
	b.nextID++
	return id
}

func (b *graphBuilder) addRow(fields []string) error {
	if len(fields) < columnCount {
		return fmt.Errorf("expected %d columns, got %d", columnCount, len(fields))
	}

	castDate, err := parseCastingDate(fields[colCastingDate])
	if err != nil {
		return fmt.Errorf("casting date %q: %w", fields[colCastingDate], err)
	}
	dayNum, ok := parseDayNum(fields[colCylinderID])
	if !ok {
		return fmt.Errorf("cylinder id %q", fields[colCylinderID])
	}

	mixDesign := b.ensureMixDesign(fields[colMixDesign])
	job := b.ensureJob(fields[colJobID], fields[colJobName])
	bed := b.ensureBed(fields[colBedID])
	prodDay := b.ensureProductionDay(castDate)
	pour := b.ensurePour(fields[colPourID], job, bed, castDate)
	batch := b.ensureMixBatch(prodDay, mixDesign)
	placement := b.ensurePlacement(pour, batch, fields)
	b.ensureRequirement(mixDesign, dayNum, parseIntOrZero(fields[colRequiredPsi]))

	testSet := b.testSets[placement.PlacementID]
	if testSet == nil {
		testSet = &models.TestSet{TestSetID: b.id(), PlacementID: placement.PlacementID}
		b.testSets[placement.PlacementID] = testSet
		b.data.TestSets = append(b.data.TestSets, testSet)
	}

	day := &models.TestSetDay{
		TestSetDayID: b.id(),
		TestSetID:    testSet.TestSetID,
		DayNum:       dayNum,
		DateDue:      castDate.AddDate(0, 0, dayNum),
		DateTested:   parseTestingDate(fields[colTestingDate], castDate.Year()),
		Comments:     strings.TrimSpace(fields[colComments]),
	}
	b.data.TestSetDays = append(b.data.TestSetDays, day)

	testCode := strings.TrimSpace(fields[colTestCode])
	breaks := []*int{
		parseOptionalInt(fields[colBreak1]),
		parseOptionalInt(fields[colBreak2]),
		parseOptionalInt(fields[colBreak3]),
	}
	for i, breakPsi := range breaks {
		b.data.TestCylinders = append(b.data.TestCylinders, &models.TestCylinder{
			TestCylinderID: b.id(),
			TestSetDayID:   day.TestSetDayID,
			Code:           fmt.Sprintf("%s-%d", testCode, i+1),
			BreakPsi:       breakPsi,
		})
	}

	return nil
}

func (b *graphBuilder) ensureMixDesign(code string) *models.MixDesign {
	code = strings.TrimSpace(code)
	if md, ok := b.mixDesigns[code]; ok {
		return md
	}
	md := &models.MixDesign{MixDesignID: b.id(), Code: code}
	b.mixDesigns[code] = md
	b.data.MixDesigns = append(b.data.MixDesigns, md)
	return md
}

func (b *graphBuilder) ensureJob(code, name string) *models.Job {
	code = strings.TrimSpace(code)
	if j, ok := b.jobs[code]; ok {
		return j
	}
	j := &models.Job{JobID: b.id(), Code: code, Name: strings.TrimSpace(name)}
	b.jobs[code] = j
	b.data.Jobs = append(b.data.Jobs, j)
	return j
}

func (b *graphBuilder) ensureBed(label string) *models.Bed {
	label = strings.TrimSpace(label)
	if bed, ok := b.beds[label]; ok {
		return bed
	}
	bed := &models.Bed{BedID: b.id()}
	if n := parseOptionalInt(label); n != nil {
		bed.BedID = *n
	}
	b.beds[label] = bed
	b.data.Beds = append(b.data.Beds, bed)
	return bed
}

func (b *graphBuilder) ensureProductionDay(date time.Time) *models.ProductionDay {
	key := date.Format("20060102")
	if pd, ok := b.prodDays[key]; ok {
		return pd
	}
	pd := &models.ProductionDay{ProductionDayID: b.id(), Date: date}
	b.prodDays[key] = pd
	b.data.ProductionDays = append(b.data.ProductionDays, pd)
	return pd
}

func (b *graphBuilder) ensurePour(pourCode string, job *models.Job, bed *models.Bed, castDate time.Time) *models.Pour {
	key := fmt.Sprintf("%s|%d|%d|%s", strings.TrimSpace(pourCode), job.JobID, bed.BedID, castDate.Format("20060102"))
	if p, ok := b.pours[key]; ok {
		return p
	}
	p := &models.Pour{PourID: b.id(), JobID: job.JobID, BedID: bed.BedID}
	b.pours[key] = p
	b.data.Pours = append(b.data.Pours, p)
	return p
}

func (b *graphBuilder) ensureMixBatch(pd *models.ProductionDay, md *models.MixDesign) *models.MixBatch {
	key := fmt.Sprintf("%d|%d", pd.ProductionDayID, md.MixDesignID)
	if mb, ok := b.mixBatches[key]; ok {
		return mb
	}
	mb := &models.MixBatch{MixBatchID: b.id(), ProductionDayID: pd.ProductionDayID, MixDesignID: md.MixDesignID}
	b.mixBatches[key] = mb
	b.data.MixBatches = append(b.data.MixBatches, mb)
	return mb
}

func (b *graphBuilder) ensurePlacement(pour *models.Pour, batch *models.MixBatch, fields []string) *models.Placement {
	key := fmt.Sprintf("%d|%d|%s|%s|%s|%s|%s",
		pour.PourID, batch.MixBatchID,
		strings.TrimSpace(fields[colYardsPerBed]),
		strings.TrimSpace(fields[colBatchingStartTime]),
		strings.TrimSpace(fields[colTruckNo]),
		strings.TrimSpace(fields[colPieceType]),
		strings.TrimSpace(fields[colOvenID]))
	if p, ok := b.placements[key]; ok {
		return p
	}

	p := &models.Placement{
		PlacementID: b.id(),
		PourID:      pour.PourID,
		MixBatchID:  batch.MixBatchID,
		PieceType:   strings.TrimSpace(fields[colPieceType]),
		StartTime:   parseClock(fields[colBatchingStartTime]),
		Volume:      parseFloatOrZero(fields[colYardsPerBed]),
		OvenID:      strings.TrimSpace(fields[colOvenID]),
	}
	b.placements[key] = p
	b.data.Placements = append(b.data.Placements, p)

	for _, truck := range strings.Split(fields[colTruckNo], ",") {
		truck = strings.TrimSpace(truck)
		if truck == "" {
			continue
		}
		b.data.Deliveries = append(b.data.Deliveries, &models.Delivery{
			DeliveryID:  b.id(),
			PlacementID: p.PlacementID,
			TruckID:     truck,
		})
	}

	return p
}

func (b *graphBuilder) ensureRequirement(md *models.MixDesign, dayNum, requiredPsi int) {
	if requiredPsi == 0 {
		return
	}
	key := fmt.Sprintf("%d|%d", md.MixDesignID, dayNum)
	if b.requirements[key] {
		return
	}
	b.requirements[key] = true
	b.data.Requirements = append(b.data.Requirements, &models.MixDesignRequirement{
		MixDesignRequirementID: b.id(),
		MixDesignID:            md.MixDesignID,
		TestType:               dayNum,
		RequiredPsi:            requiredPsi,
	})
}
