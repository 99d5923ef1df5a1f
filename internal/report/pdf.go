package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
)

const (
	lineHeight = 6.0
	colIndex   = 20.0
	colKind    = 30.0
	colSide    = 65.0
)

// DiffReport is everything printed in one comparison report.
type DiffReport struct {
	ID        string
	Created   time.Time
	Baseline  *talent.SelectionRecord
	Candidate *talent.SelectionRecord
	Diff      *talent.DiffResult
	// Unchanged rows are omitted unless set.
	IncludeUnchanged bool
}

func NewDiffReport(baseline, candidate *talent.SelectionRecord, d *talent.DiffResult) *DiffReport {
	return &DiffReport{
		ID:        uuid.NewString(),
		Created:   time.Now().UTC(),
		Baseline:  baseline,
		Candidate: candidate,
		Diff:      d,
	}
}

// WritePDF renders the report as a single A4 document.
func (r *DiffReport) WritePDF(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Talent comparison "+r.Diff.SpecName, false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Courier", "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("report %s  page %d", r.ID, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Talent comparison: "+specTitle(r.Diff))
	pdf.Ln(10)
	pdf.SetFont("Courier", "", 8)
	pdf.Cell(0, 5, r.Created.Format(time.RFC3339))
	pdf.Ln(7)

	pdf.SetFont("Courier", "", 10)
	r.writeBuildLine(pdf, "baseline ", r.Baseline)
	r.writeBuildLine(pdf, "candidate", r.Candidate)
	pdf.Ln(2)

	s := r.Diff.Summary
	pdf.Cell(0, lineHeight, fmt.Sprintf("added %d  removed %d  changed %d", len(s.Added), len(s.Removed), len(s.Changed)))
	pdf.Ln(lineHeight + 2)

	pdf.SetFont("Courier", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	for _, h := range []struct {
		w   float64
		txt string
	}{{colIndex, "node"}, {colKind, "kind"}, {colSide, "baseline"}, {colSide, "candidate"}} {
		pdf.CellFormat(h.w, lineHeight, h.txt, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Courier", "", 9)
	for _, e := range r.Diff.Entries {
		if e.Kind == talent.DiffUnchanged && !r.IncludeUnchanged {
			continue
		}
		pdf.CellFormat(colIndex, lineHeight, strconv.Itoa(e.Index), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colKind, lineHeight, string(e.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colSide, lineHeight, describe(e.Before), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colSide, lineHeight, describe(e.After), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report %s: %w", r.ID, err)
	}
	return pdf.Output(w)
}

func (r *DiffReport) writeBuildLine(pdf *gofpdf.Fpdf, label string, rec *talent.SelectionRecord) {
	if rec == nil {
		return
	}
	pdf.Cell(0, lineHeight, fmt.Sprintf("%s v%d hash %s  %d selected", label, rec.Version, rec.TreeHash, rec.SelectedCount()))
	pdf.Ln(lineHeight)
}

func specTitle(d *talent.DiffResult) string {
	if d.SpecName != "" {
		return d.SpecName
	}
	return fmt.Sprintf("spec %d", d.SpecID)
}

func describe(s *talent.NodeSelection) string {
	if s == nil {
		return "-"
	}
	if !s.IsPurchased() {
		return "granted"
	}
	out := "purchased"
	if ranks, ok := s.RanksPurchased(); ok {
		out += fmt.Sprintf(" r%d", ranks)
	}
	if c, ok := s.ChoiceEntryIndex(); ok {
		out += fmt.Sprintf(" c%d", c)
	}
	return out
}
