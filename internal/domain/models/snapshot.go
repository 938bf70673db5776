package models

// SnapshotData carries the flat collections read from storage before the
// navigation pointers are linked.
type SnapshotData struct {
	ProductionDays []*ProductionDay
	MixDesigns     []*MixDesign
	Requirements   []*MixDesignRequirement
	Jobs           []*Job
	Beds           []*Bed
	Pours          []*Pour
	MixBatches     []*MixBatch
	Placements     []*Placement
	Deliveries     []*Delivery
	TestSets       []*TestSet
	TestSetDays    []*TestSetDay
	TestCylinders  []*TestCylinder
}

// Snapshot is the fully materialized entity graph the computation layer works
// on. All navigation pointers are resolved; no further loading happens past
// this point.
type Snapshot struct {
	TestSets   []*TestSet
	Placements []*Placement

	daysByID map[int]*TestSetDay
}

// NewSnapshot links the flat collections into a navigable graph. Dangling
// foreign keys leave the corresponding pointer nil; the computation layer
// treats those as missing context, not as errors.
func NewSnapshot(data SnapshotData) *Snapshot {
	productionDays := make(map[int]*ProductionDay, len(data.ProductionDays))
	for _, pd := range data.ProductionDays {
		productionDays[pd.ProductionDayID] = pd
	}

	mixDesigns := make(map[int]*MixDesign, len(data.MixDesigns))
	for _, md := range data.MixDesigns {
		mixDesigns[md.MixDesignID] = md
	}
	for _, req := range data.Requirements {
		if md, ok := mixDesigns[req.MixDesignID]; ok {
			md.Requirements = append(md.Requirements, req)
		}
	}

	jobs := make(map[int]*Job, len(data.Jobs))
	for _, j := range data.Jobs {
		jobs[j.JobID] = j
	}
	beds := make(map[int]*Bed, len(data.Beds))
	for _, b := range data.Beds {
		beds[b.BedID] = b
	}

	pours := make(map[int]*Pour, len(data.Pours))
	for _, p := range data.Pours {
		p.Job = jobs[p.JobID]
		p.Bed = beds[p.BedID]
		pours[p.PourID] = p
	}

	batches := make(map[int]*MixBatch, len(data.MixBatches))
	for _, mb := range data.MixBatches {
		mb.ProductionDay = productionDays[mb.ProductionDayID]
		mb.MixDesign = mixDesigns[mb.MixDesignID]
		batches[mb.MixBatchID] = mb
	}

	placements := make(map[int]*Placement, len(data.Placements))
	for _, p := range data.Placements {
		p.Pour = pours[p.PourID]
		p.MixBatch = batches[p.MixBatchID]
		placements[p.PlacementID] = p
	}
	for _, d := range data.Deliveries {
		if p, ok := placements[d.PlacementID]; ok {
			p.Deliveries = append(p.Deliveries, d)
		}
	}

	sets := make(map[int]*TestSet, len(data.TestSets))
	for _, ts := range data.TestSets {
		ts.Placement = placements[ts.PlacementID]
		sets[ts.TestSetID] = ts
	}

	daysByID := make(map[int]*TestSetDay, len(data.TestSetDays))
	for _, day := range data.TestSetDays {
		if ts, ok := sets[day.TestSetID]; ok {
			day.TestSet = ts
			ts.Days = append(ts.Days, day)
		}
		daysByID[day.TestSetDayID] = day
	}
	for _, cyl := range data.TestCylinders {
		if day, ok := daysByID[cyl.TestSetDayID]; ok {
			day.Cylinders = append(day.Cylinders, cyl)
		}
	}

	return &Snapshot{
		TestSets:   data.TestSets,
		Placements: data.Placements,
		daysByID:   daysByID,
	}
}

// TestSetDay returns the schedule entry with the given id, or nil when absent.
func (s *Snapshot) TestSetDay(id int) *TestSetDay {
	return s.daysByID[id]
}
