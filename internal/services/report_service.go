package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"schoolmeal/internal/repositories"
	"schoolmeal/pkg/utils"
)

const exportDays = 365

type CSVExport struct {
	Filename string
	Content  []byte
}

type ReportServiceInterface interface {
	ExportYearCSV(ctx context.Context, actor Actor, studentID uuid.UUID) (*CSVExport, error)
}

type ReportService struct {
	ledger      LedgerServiceInterface
	studentRepo repositories.StudentRepository
}

func NewReportService(ledger LedgerServiceInterface, studentRepo repositories.StudentRepository) ReportServiceInterface {
	return &ReportService{
		ledger:      ledger,
		studentRepo: studentRepo,
	}
}

func formatMacro(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ExportYearCSV writes one row per event over the last year, then a totals row.
// Output starts with a UTF-8 BOM so spreadsheet tools detect the encoding.
func (r *ReportService) ExportYearCSV(ctx context.Context, actor Actor, studentID uuid.UUID) (*CSVExport, error) {
	end := r.ledger.Today()
	start := end.AddDate(0, 0, -exportDays)

	summary, err := r.ledger.GetRangeSummary(ctx, actor, studentID, start, end)
	if err != nil {
		return nil, err
	}

	student, err := r.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if student == nil {
		return nil, utils.ErrStudentNotFound
	}

	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)

	rows := [][]string{{"Date", "Time", "Dish", "Kcal", "Protein", "Fat", "Carbs"}}
	for _, day := range summary.Days {
		for _, e := range day.Events {
			rows = append(rows, []string{
				day.Day,
				e.EatenAt.Format("15:04:05"),
				e.Name,
				formatMacro(e.Macros.Calories),
				formatMacro(e.Macros.Protein),
				formatMacro(e.Macros.Fat),
				formatMacro(e.Macros.Carbs),
			})
		}
	}
	rows = append(rows, []string{
		"Total", "", "",
		formatMacro(summary.Total.Calories),
		formatMacro(summary.Total.Protein),
		formatMacro(summary.Total.Fat),
		formatMacro(summary.Total.Carbs),
	})

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	return &CSVExport{
		Filename: fmt.Sprintf("%s_nutrition_%s_to_%s.csv", student.Login, summary.From, summary.To),
		Content:  buf.Bytes(),
	}, nil
}
