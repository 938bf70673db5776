package models

import "time"

// ProductionDay is one calendar date on which concrete was produced. Unique by date.
type ProductionDay struct {
	ProductionDayID int       `bson:"production_day_id" json:"production_day_id"`
	Date            time.Time `bson:"date" json:"date"`
}

// MixDesign is a concrete formulation identified by a code (e.g. "824.1").
type MixDesign struct {
	MixDesignID int    `bson:"mix_design_id" json:"mix_design_id"`
	Code        string `bson:"code" json:"code"`

	Requirements []*MixDesignRequirement `bson:"-" json:"-"`
}

// MixDesignRequirement gives the required PSI threshold for one test age of a
// mix design. At most one requirement per (mix design, test type).
type MixDesignRequirement struct {
	MixDesignRequirementID int `bson:"mix_design_requirement_id" json:"mix_design_requirement_id"`
	MixDesignID            int `bson:"mix_design_id" json:"mix_design_id"`
	TestType               int `bson:"test_type" json:"test_type"` // age in days: 1, 7 or 28
	RequiredPsi            int `bson:"required_psi" json:"required_psi"`
}

// Job is the construction job concrete is poured for.
type Job struct {
	JobID int    `bson:"job_id" json:"job_id"`
	Code  string `bson:"code" json:"code"` // e.g. "25-020"
	Name  string `bson:"name" json:"name"` // e.g. "Woodbury HS"
}

// Bed is a casting bed on the plant floor.
type Bed struct {
	BedID int `bson:"bed_id" json:"bed_id"`
}

// Pour ties one job and one bed together for a casting date.
type Pour struct {
	PourID int `bson:"pour_id" json:"pour_id"`
	JobID  int `bson:"job_id" json:"job_id"`
	BedID  int `bson:"bed_id" json:"bed_id"`

	Job *Job `bson:"-" json:"-"`
	Bed *Bed `bson:"-" json:"-"`
}

// MixBatch is one mix design poured on one production day. Parent of all
// placements made from that batch.
type MixBatch struct {
	MixBatchID      int `bson:"mix_batch_id" json:"mix_batch_id"`
	ProductionDayID int `bson:"production_day_id" json:"production_day_id"`
	MixDesignID     int `bson:"mix_design_id" json:"mix_design_id"`

	ProductionDay *ProductionDay `bson:"-" json:"-"`
	MixDesign     *MixDesign     `bson:"-" json:"-"`
}

// Placement is one concrete placement, the unit tests are scheduled against.
// StartTime is the batching start as an offset from midnight on the production
// date; nil when the legacy data carried no time.
type Placement struct {
	PlacementID int            `bson:"placement_id" json:"placement_id"`
	PourID      int            `bson:"pour_id" json:"pour_id"`
	MixBatchID  int            `bson:"mix_batch_id" json:"mix_batch_id"`
	PieceType   string         `bson:"piece_type" json:"piece_type"` // e.g. "Walls", "Tees"
	StartTime   *time.Duration `bson:"start_time,omitempty" json:"start_time,omitempty"`
	Volume      float64        `bson:"volume" json:"volume"` // cubic yards
	OvenID      string         `bson:"oven_id,omitempty" json:"oven_id,omitempty"`

	Pour       *Pour       `bson:"-" json:"-"`
	MixBatch   *MixBatch   `bson:"-" json:"-"`
	Deliveries []*Delivery `bson:"-" json:"-"`
}

// Delivery records one truck delivering concrete for a placement.
type Delivery struct {
	DeliveryID  int    `bson:"delivery_id" json:"delivery_id"`
	PlacementID int    `bson:"placement_id" json:"placement_id"`
	TruckID     string `bson:"truck_id" json:"truck_id"` // e.g. "3", "6", "7"
}

// TestSet is the set of scheduled tests for one placement.
type TestSet struct {
	TestSetID   int `bson:"test_set_id" json:"test_set_id"`
	PlacementID int `bson:"placement_id" json:"placement_id"`

	Placement *Placement    `bson:"-" json:"-"`
	Days      []*TestSetDay `bson:"-" json:"-"`
}

// TestSetDay is one scheduled test age within a test set. DateDue is the
// production date plus DayNum; DateTested stays nil until the cylinders are
// actually crushed.
type TestSetDay struct {
	TestSetDayID int        `bson:"test_set_day_id" json:"test_set_day_id"`
	TestSetID    int        `bson:"test_set_id" json:"test_set_id"`
	DayNum       int        `bson:"day_num" json:"day_num"` // 1, 7 or 28
	DateDue      time.Time  `bson:"date_due" json:"date_due"`
	DateTested   *time.Time `bson:"date_tested,omitempty" json:"date_tested,omitempty"`
	Comments     string     `bson:"comments,omitempty" json:"comments,omitempty"`

	TestSet   *TestSet        `bson:"-" json:"-"`
	Cylinders []*TestCylinder `bson:"-" json:"-"`
}

// TestCylinder is one physical specimen. BreakPsi stays nil until the
// cylinder has been crushed.
type TestCylinder struct {
	TestCylinderID int    `bson:"test_cylinder_id" json:"test_cylinder_id"`
	TestSetDayID   int    `bson:"test_set_day_id" json:"test_set_day_id"`
	Code           string `bson:"code" json:"code"`
	BreakPsi       *int   `bson:"break_psi,omitempty" json:"break_psi,omitempty"`
}
