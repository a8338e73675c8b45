// Package report exports practice progress to an .xlsx workbook.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/streak"
)

// Sheet names.
const (
	SheetSchedule = "Schedule"
	SheetConcepts = "Concepts"
	SheetActivity = "Activity"
)

// Data is everything written to a report.
type Data struct {
	GeneratedAt time.Time
	Entries     []spacedrep.ScheduleEntry
	Concepts    []mastery.ConceptStrength
	Days        []streak.Day
	Streak      streak.State
}

var (
	scheduleHeader = []any{"Key", "Label", "Ease", "Interval (days)", "Repetitions", "Reviews", "Last quality", "Last review", "Next review", "Status"}
	conceptHeader  = []any{"Module", "Concept", "Avg ease", "Samples", "Label"}
	activityHeader = []any{"Date", "Items completed"}
)

// Build renders data into a new workbook. The caller owns the returned file.
func Build(d Data) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSchedule); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetConcepts, SheetActivity} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	rows := [][]any{scheduleHeader}
	for _, e := range d.Entries {
		rows = append(rows, []any{
			e.Key,
			e.Label,
			round2(e.EaseFactor),
			e.Interval,
			e.Repetitions,
			e.ReviewCount,
			e.LastQuality,
			e.LastReviewed().Format(time.DateOnly),
			e.NextReview.Format(time.DateOnly),
			string(e.Status(d.GeneratedAt)),
		})
	}
	if err := writeRows(f, SheetSchedule, rows); err != nil {
		f.Close()
		return nil, err
	}

	rows = [][]any{conceptHeader}
	for _, c := range d.Concepts {
		rows = append(rows, []any{c.Module, c.Concept, round2(c.AvgEase), c.SampleCount, c.Label.String()})
	}
	if err := writeRows(f, SheetConcepts, rows); err != nil {
		f.Close()
		return nil, err
	}

	rows = [][]any{activityHeader}
	for _, day := range d.Days {
		rows = append(rows, []any{day.Date, day.Items})
	}
	rows = append(rows,
		[]any{},
		[]any{"Current streak", d.Streak.Current},
		[]any{"Longest streak", d.Streak.Longest},
	)
	if err := writeRows(f, SheetActivity, rows); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// WriteFile builds the workbook and saves it to path.
func WriteFile(path string, d Data) error {
	f, err := Build(d)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
