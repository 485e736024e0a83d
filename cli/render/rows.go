package render

import (
	"time"

	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// ReportRow is the flattened, one-line view of a report used by table output.
type ReportRow struct {
	Puzzle  types.PuzzleID `json:"puzzle"`
	PartOne string         `json:"part_one"`
	PartTwo string         `json:"part_two"`
	Total   time.Duration  `json:"total"`
	Profile string         `json:"profile"`
}

// NewReportRow flattens r. Total is zero when the report carries no
// Total timing.
func NewReportRow(r *solution.Report) ReportRow {
	total, _ := r.Timings.Lookup(solution.LabelTotal)
	return ReportRow{
		Puzzle:  r.Puzzle,
		PartOne: r.PartOne.String(),
		PartTwo: r.PartTwo.String(),
		Total:   total,
		Profile: r.Profile,
	}
}

// ReportRows flattens every report in order.
func ReportRows(reports []*solution.Report) []ReportRow {
	rows := make([]ReportRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, NewReportRow(r))
	}
	return rows
}
