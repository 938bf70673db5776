package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot_LinksGraph(t *testing.T) {
	data := SnapshotData{
		ProductionDays: []*ProductionDay{{ProductionDayID: 1, Date: time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC)}},
		MixDesigns:     []*MixDesign{{MixDesignID: 1, Code: "824.1"}},
		Requirements: []*MixDesignRequirement{
			{MixDesignRequirementID: 1, MixDesignID: 1, TestType: 7, RequiredPsi: 5000},
		},
		Jobs:       []*Job{{JobID: 1, Code: "25-020", Name: "Woodbury HS"}},
		Beds:       []*Bed{{BedID: 6}},
		Pours:      []*Pour{{PourID: 1, JobID: 1, BedID: 6}},
		MixBatches: []*MixBatch{{MixBatchID: 1, ProductionDayID: 1, MixDesignID: 1}},
		Placements: []*Placement{{PlacementID: 1, PourID: 1, MixBatchID: 1}},
		Deliveries: []*Delivery{
			{DeliveryID: 1, PlacementID: 1, TruckID: "3"},
			{DeliveryID: 2, PlacementID: 1, TruckID: "6"},
		},
		TestSets:    []*TestSet{{TestSetID: 1, PlacementID: 1}},
		TestSetDays: []*TestSetDay{{TestSetDayID: 10, TestSetID: 1, DayNum: 7}},
		TestCylinders: []*TestCylinder{
			{TestCylinderID: 100, TestSetDayID: 10, Code: "12-1"},
		},
	}

	s := NewSnapshot(data)

	require.Len(t, s.TestSets, 1)
	ts := s.TestSets[0]
	require.NotNil(t, ts.Placement)
	require.NotNil(t, ts.Placement.MixBatch)
	assert.Equal(t, "824.1", ts.Placement.MixBatch.MixDesign.Code)
	assert.Equal(t, 2025, ts.Placement.MixBatch.ProductionDay.Date.Year())
	require.Len(t, ts.Placement.MixBatch.MixDesign.Requirements, 1)

	require.NotNil(t, ts.Placement.Pour)
	assert.Equal(t, "25-020", ts.Placement.Pour.Job.Code)
	assert.Equal(t, 6, ts.Placement.Pour.Bed.BedID)
	assert.Len(t, ts.Placement.Deliveries, 2)

	require.Len(t, ts.Days, 1)
	assert.Same(t, ts, ts.Days[0].TestSet)
	require.Len(t, ts.Days[0].Cylinders, 1)
	assert.Equal(t, "12-1", ts.Days[0].Cylinders[0].Code)

	assert.Same(t, ts.Days[0], s.TestSetDay(10))
	assert.Nil(t, s.TestSetDay(999))
}

func TestNewSnapshot_DanglingKeysStayNil(t *testing.T) {
	data := SnapshotData{
		Placements:  []*Placement{{PlacementID: 1, PourID: 77, MixBatchID: 88}},
		TestSets:    []*TestSet{{TestSetID: 1, PlacementID: 1}},
		TestSetDays: []*TestSetDay{{TestSetDayID: 10, TestSetID: 404, DayNum: 7}},
	}

	s := NewSnapshot(data)

	require.Len(t, s.TestSets, 1)
	assert.Nil(t, s.TestSets[0].Placement.Pour)
	assert.Nil(t, s.TestSets[0].Placement.MixBatch)

	// The orphaned day never attaches to a set but stays reachable by id.
	assert.Empty(t, s.TestSets[0].Days)
	require.NotNil(t, s.TestSetDay(10))
	assert.Nil(t, s.TestSetDay(10).TestSet)
}
