package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"jobmarket/internal/models"
)

// Generator is an interface so handlers can be tested with a stub.
type Generator interface {
	GenerateApplicationSummary(app *models.Application) (string, error)
}

type SummaryGenerator struct {
	RootDir string
}

func NewSummaryGenerator(rootDir string) *SummaryGenerator {
	return &SummaryGenerator{RootDir: filepath.Clean(rootDir)}
}

// GenerateApplicationSummary renders a one-page summary and returns the
// path of the written file.
func (g *SummaryGenerator) GenerateApplicationSummary(app *models.Application) (string, error) {
	dir := filepath.Join(g.RootDir, "applications")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create pdf dir: %w", err)
	}
	target := filepath.Join(dir, fmt.Sprintf("application_%s.pdf", app.ID))

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Application %s", app.ID), false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "Job Application Summary", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	line := func(label, value string) {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 12)
		doc.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	line("Job:", app.JobTitle)
	if app.JobLocation != "" {
		line("Location:", app.JobLocation)
	}
	line("Applicant:", app.StudentUsername)
	line("Email:", app.StudentEmail)
	line("Status:", app.Status)
	line("Applied:", app.AppliedAt.Format(time.RFC1123))
	if app.ReviewedAt != nil {
		line("Reviewed:", app.ReviewedAt.Format(time.RFC1123))
	}

	if app.CoverLetter != nil && *app.CoverLetter != "" {
		doc.Ln(4)
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 7, "Cover letter", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 6, *app.CoverLetter, "", "L", false)
	}

	if app.ReviewerNotes != nil && *app.ReviewerNotes != "" {
		doc.Ln(4)
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 7, "Reviewer notes", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, 6, *app.ReviewerNotes, "", "L", false)
	}

	if err := doc.OutputFileAndClose(target); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return target, nil
}
