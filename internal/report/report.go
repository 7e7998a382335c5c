package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/saaquiz/saaquiz/internal/grader"
	"github.com/saaquiz/saaquiz/internal/session"
)

// Meta is the header information printed on the progress sheet.
type Meta struct {
	Title  string
	Source string // question data file
	Date   time.Time
}

// Write renders sum as a PDF progress sheet.
func Write(w io.Writer, sum *session.Summary, meta Meta) error {
	if meta.Title == "" {
		meta.Title = "SAA Quiz Progress"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Title, true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, meta.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	sub := "Generated " + meta.Date.Format("2006-01-02 15:04")
	if meta.Source != "" {
		sub += " | " + meta.Source
	}
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Answered %d of %d | Correct %d | Incorrect %d | Ungraded %d | Accuracy %.0f%%",
			sum.Answered, sum.TotalQuestions, sum.TotalCorrect, sum.TotalIncorrect, sum.Ungraded, sum.Accuracy*100),
		"", 1, "C", false, 0, "")

	pdf.Ln(4)
	if len(sum.Rows) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, "No answers saved yet.", "", 1, "C", false, 0, "")
		return pdf.Output(w)
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(30, 7, "Question", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Your answer", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Correct", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Result", "1", 1, "C", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	header()

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range sum.Rows {
		if pdf.GetY()+7 > pageH-bottom-12 {
			pdf.AddPage()
			header()
		}
		correct := row.Correct
		if correct == "" {
			correct = "-"
		}
		pdf.SetTextColor(outcomeColor(row.Outcome))
		pdf.CellFormat(30, 7, fmt.Sprintf("Q%d", row.QNum), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, row.Choice, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, correct, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 7, row.Outcome.String(), "1", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	return pdf.Output(w)
}

// Generate returns the progress sheet as PDF bytes.
func Generate(sum *session.Summary, meta Meta) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, sum, meta); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func outcomeColor(o grader.Outcome) (int, int, int) {
	switch o {
	case grader.OutcomeCorrect:
		return 0, 128, 0
	case grader.OutcomeIncorrect:
		return 192, 0, 0
	default:
		return 90, 90, 90
	}
}
