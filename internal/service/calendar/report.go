package calendar

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/safarpk/safarpk/internal/domain"
)

// Report renders the visible range as a PDF: a summary block followed by one
// line per booking.
func (s *CalendarService) Report(ctx context.Context, actor domain.Actor, filter Filter) ([]byte, error) {
	visible, err := s.visible(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	st := summarize(visible)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Range     : %s to %s", filter.From.Format(dateLayout), filter.To.Format(dateLayout)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Generated : %s", s.now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Total bookings : %d", st.Total),
		fmt.Sprintf("Pending        : %d", st.Pending),
		fmt.Sprintf("Confirmed      : %d", st.Confirmed),
		fmt.Sprintf("Cancelled      : %d", st.Cancelled),
		fmt.Sprintf("Completed      : %d", st.Completed),
		fmt.Sprintf("Revenue        : PKR %s", formatAmount(st.Revenue)),
	} {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range reportColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(visible) == 0 {
		pdf.MultiCell(0, 6, "No bookings in this range.", "", "", false)
	}
	for _, b := range visible {
		row := []string{
			shortID(b.ID),
			title(b),
			b.StartDate.Format(dateLayout),
			b.EndDate.Format(dateLayout),
			b.Status.Label(),
			formatAmount(b.TotalPrice),
		}
		for i, col := range reportColumns {
			pdf.CellFormat(col.width, 6, truncate(row[i], col.chars), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

var reportColumns = []struct {
	title string
	width float64
	chars int
}{
	{title: "Booking", width: 22, chars: 8},
	{title: "Title", width: 62, chars: 34},
	{title: "Start", width: 24, chars: 10},
	{title: "End", width: 24, chars: 10},
	{title: "Status", width: 22, chars: 10},
	{title: "Total", width: 26, chars: 14},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
