package models

// ReportRow is one line of the denormalized concrete report, one per
// (test set, test day) pair. Every field is pre-formatted for display;
// downstream consumers compare these values byte for byte against the
// historical spreadsheets.
type ReportRow struct {
	TestID            string `json:"test_id"`
	CylinderID        string `json:"cylinder_id"` // "1C", "7C", "28C"
	CastingDate       string `json:"casting_date"`
	MixDesign         string `json:"mix_design"`
	YardsPerBed       string `json:"yards_per_bed"`
	BedID             string `json:"bed_id"`
	BatchingStartTime string `json:"batching_start_time"`
	JobID             string `json:"job_id"`
	JobName           string `json:"job_name"`
	TruckNo           string `json:"truck_no"`
	PourID            string `json:"pour_id"`
	PieceType         string `json:"piece_type"`
	OvenID            string `json:"oven_id"`
	AgeOfTest         string `json:"age_of_test"`
	TestingDate       string `json:"testing_date"`
	Required          string `json:"required"`
	Break1            string `json:"break_1"`
	Break2            string `json:"break_2"`
	Break3            string `json:"break_3"`
	AveragePsi        string `json:"average_psi"`
	Comments          string `json:"comments"`
}

// ReportColumns is the header row of the exported report, in column order.
var ReportColumns = []string{
	"Test ID", "Cylinder ID", "Casting Date", "Mix Design", "Yards/Bed",
	"Bed ID", "Batching Start Time", "Job ID", "Job Name", "Truck No.",
	"Pour ID", "Piece Type", "Oven ID", "Age of Test", "Testing Date",
	"Required (PSI)", "Break #1", "Break #2", "Break #3", "Average PSI",
	"Comments",
}

// Values returns the row's fields in ReportColumns order.
func (r ReportRow) Values() []string {
	return []string{
		r.TestID, r.CylinderID, r.CastingDate, r.MixDesign, r.YardsPerBed,
		r.BedID, r.BatchingStartTime, r.JobID, r.JobName, r.TruckNo,
		r.PourID, r.PieceType, r.OvenID, r.AgeOfTest, r.TestingDate,
		r.Required, r.Break1, r.Break2, r.Break3, r.AveragePsi,
		r.Comments,
	}
}
