package performance

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"hrportal/internal/domain/org"
)

type ReportData struct {
	Evaluation Evaluation
	Employee   org.Employee
	Evaluator  org.Employee
	CycleTitle string
}

// RenderReport writes a one-document PDF summary of an evaluation.
func RenderReport(w io.Writer, data ReportData) error {
	ev := data.Evaluation
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Evaluation")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if data.CycleTitle != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Cycle: %s", data.CycleTitle))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", data.Employee.FullName()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Evaluator: %s (%s)", data.Evaluator.FullName(), ev.EvaluationType))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", ev.StartDate.Format(dateLayout), ev.EndDate.Format(dateLayout)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", ev.Status))
	pdf.Ln(7)
	if ev.OverallRating != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Overall rating: %.2f", *ev.OverallRating))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	for _, category := range ev.Categories {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, fmt.Sprintf("%s (weight %.0f)", category.Name, category.Weight))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, criterion := range category.Criteria {
			rating := "-"
			if criterion.Rating != nil {
				rating = fmt.Sprintf("%.1f", *criterion.Rating)
			}
			pdf.Cell(0, 7, fmt.Sprintf("  %s: %s / %d", criterion.Title, rating, criterion.MaxRating))
			pdf.Ln(6)
			if criterion.Comment != "" {
				pdf.MultiCell(0, 6, "    "+criterion.Comment, "", "L", false)
			}
		}
		pdf.Ln(3)
	}

	if ev.Comments != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Comments")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, ev.Comments, "", "L", false)
	}
	return pdf.Output(w)
}

// GenerateReport renders the evaluation report into dir and returns the
// file path.
func (s *Service) GenerateReport(ctx context.Context, evaluationID, dir string) (string, error) {
	evaluation, err := s.store.GetEvaluation(ctx, evaluationID)
	if err != nil {
		return "", err
	}
	data := ReportData{Evaluation: evaluation}
	if data.Employee, err = s.people.GetEmployee(ctx, evaluation.EmployeeID); err != nil {
		return "", err
	}
	if data.Evaluator, err = s.people.GetEmployee(ctx, evaluation.EvaluatorID); err != nil {
		return "", err
	}
	if evaluation.CycleID != "" {
		if cycle, err := s.store.GetCycle(ctx, evaluation.CycleID); err == nil {
			data.CycleTitle = cycle.Title
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, "evaluation-"+evaluation.ID+".pdf")
	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	if err := RenderReport(file, data); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return filePath, nil
}
