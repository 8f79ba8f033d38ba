package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// RenderPDF renders the seasonal report as an A4 PDF and returns the
// document bytes for streaming.
func RenderPDF(r *Seasonal) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("FarmKeep Seasonal Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Seasonal Farm Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Farmer: %s    Generated: %s", r.UserInfo.Username, r.GeneratedAt), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(widths []float64, cols []string, fill bool) {
		for i, col := range cols {
			pdf.CellFormat(widths[i], 7, col, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	section("Summary")
	pdf.MultiCell(0, 6, fmt.Sprintf(
		"Tasks: %d total (%d pending, %d completed)\nInventory: %d items, %d units in stock\nExpenses: %.2f total (kharif %.2f, rabi %.2f, zaid %.2f)",
		r.Summary.TotalTasks, r.Summary.PendingTasks, r.Summary.CompletedTasks,
		r.Summary.TotalInventoryItems, r.Summary.TotalInventoryQuantity,
		r.Summary.TotalExpenses,
		r.Summary.ExpensesBySeason["kharif"],
		r.Summary.ExpensesBySeason["rabi"],
		r.Summary.ExpensesBySeason["zaid"],
	), "", "L", false)
	pdf.Ln(3)

	section("Tasks")
	w := []float64{70, 30, 90}
	pdf.SetFillColor(230, 230, 230)
	row(w, []string{"Title", "Date", "Notes"}, true)
	for _, t := range r.Tasks {
		row(w, []string{t.Title, t.Date, t.Notes}, false)
	}
	pdf.Ln(3)

	section("Inventory")
	w = []float64{120, 70}
	row(w, []string{"Item", "Quantity"}, true)
	for _, inv := range r.Inventory {
		row(w, []string{inv.Item, fmt.Sprintf("%d", inv.Quantity)}, false)
	}
	pdf.Ln(3)

	section("Expenses")
	w = []float64{90, 50, 50}
	row(w, []string{"Item", "Amount", "Season"}, true)
	for _, e := range r.Expenses {
		row(w, []string{e.Item, fmt.Sprintf("%.2f", e.Amount), e.Season}, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
