package report

import (
	"sort"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
)

type suffixKey struct {
	mixBatchID  int
	placementID int
}

// placementSuffixes assigns each placement its 1-based ordinal within its mix
// batch, considering only placements that carry a 1-day test. Ordering within
// a batch is by batching start time, then oven id (lexical). The ordinal
// becomes the ".N" suffix of the computed test id for 1-day tests; batch-level
// tests never consult this map.
func placementSuffixes(testSets []*models.TestSet) map[suffixKey]int {
	groups := make(map[int][]*models.Placement)
	seen := make(map[suffixKey]bool)

	for _, ts := range testSets {
		if ts.Placement == nil {
			continue
		}
		for _, day := range ts.Days {
			if day.DayNum != 1 {
				continue
			}
			key := suffixKey{ts.Placement.MixBatchID, ts.Placement.PlacementID}
			if seen[key] {
				continue
			}
			seen[key] = true
			groups[key.mixBatchID] = append(groups[key.mixBatchID], ts.Placement)
		}
	}

	suffixes := make(map[suffixKey]int, len(seen))
	for batchID, placements := range groups {
		sort.SliceStable(placements, func(i, j int) bool {
			ti, tj := startTimeOrZero(placements[i]), startTimeOrZero(placements[j])
			if ti != tj {
				return ti < tj
			}
			return placements[i].OvenID < placements[j].OvenID
		})
		for i, p := range placements {
			suffixes[suffixKey{batchID, p.PlacementID}] = i + 1
		}
	}

	return suffixes
}

func startTimeOrZero(p *models.Placement) int64 {
	if p.StartTime == nil {
		return 0
	}
	return int64(*p.StartTime)
}
