package models

import "time"

// QueueRow is one entry of the tester worklist: a single scheduled cylinder
// with enough context to identify the test without further lookups.
type QueueRow struct {
	TestCylinderCode string     `json:"test_cylinder_code"`
	OvenID           string     `json:"oven_id"`
	DayNum           int        `json:"day_num"`
	CastDate         time.Time  `json:"cast_date"`
	CastTime         string     `json:"cast_time"` // "h:mm", empty when unknown
	JobCode          string     `json:"job_code"`
	JobName          string     `json:"job_name"`
	MixDesignCode    string     `json:"mix_design_code"`
	RequiredPsi      int        `json:"required_psi"`
	PieceType        string     `json:"piece_type"`
	TestSetID        int        `json:"test_set_id"`
	TestSetDayID     int        `json:"test_set_day_id"`
	DateDue          time.Time  `json:"date_due"`
	DateTested       *time.Time `json:"date_tested,omitempty"`
}

// TestDayDetails is the point-lookup view of one schedule entry, used by the
// tester's result entry form.
type TestDayDetails struct {
	TestSetDayID  int             `json:"test_set_day_id"`
	DayNum        int             `json:"day_num"`
	Comments      string          `json:"comments"`
	DateDue       time.Time       `json:"date_due"`
	DateTested    *time.Time      `json:"date_tested,omitempty"`
	JobCode       string          `json:"job_code"`
	JobName       string          `json:"job_name"`
	MixDesignCode string          `json:"mix_design_code"`
	RequiredPsi   int             `json:"required_psi"`
	PieceType     string          `json:"piece_type"`
	CastDate      time.Time       `json:"cast_date"`
	CastTime      string          `json:"cast_time"`
	Cylinders     []CylinderBreak `json:"cylinders"`
}

// CylinderBreak pairs a cylinder with its recorded break, if any.
type CylinderBreak struct {
	TestCylinderID int    `json:"test_cylinder_id"`
	Code           string `json:"code"`
	BreakPsi       *int   `json:"break_psi,omitempty"`
}

// UntestedPlacement flags a recent placement that never got a test set
// scheduled against it.
type UntestedPlacement struct {
	PourID        int       `json:"pour_id"`
	PlacementID   int       `json:"placement_id"`
	CastDate      time.Time `json:"cast_date"`
	CastTime      string    `json:"cast_time"`
	JobCode       string    `json:"job_code"`
	JobName       string    `json:"job_name"`
	MixDesignCode string    `json:"mix_design_code"`
	PieceType     string    `json:"piece_type"`
	Volume        float64   `json:"volume"`
}

// SaveTestDayRequest carries a tester's submitted results for one schedule
// entry.
type SaveTestDayRequest struct {
	TestSetDayID   int                  `json:"test_set_day_id"`
	DateTested     time.Time            `json:"date_tested" binding:"required"`
	Comments       string               `json:"comments"`
	CylinderBreaks []CylinderBreakInput `json:"cylinder_breaks"`
}

// CylinderBreakInput is one submitted break value.
type CylinderBreakInput struct {
	TestCylinderID int `json:"test_cylinder_id" binding:"required"`
	BreakPsi       int `json:"break_psi" binding:"required"`
}
