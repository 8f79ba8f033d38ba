package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderXLSX renders the seasonal report as a spreadsheet with one sheet
// per section.
func RenderXLSX(r *Seasonal) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}
	set := func(sheet, cell string, v any) {
		_ = f.SetCellValue(sheet, cell, v)
	}

	set(summary, "A1", "FarmKeep Seasonal Report")
	set(summary, "A2", "Farmer")
	set(summary, "B2", r.UserInfo.Username)
	set(summary, "A3", "Generated")
	set(summary, "B3", r.GeneratedAt)
	set(summary, "A5", "Total tasks")
	set(summary, "B5", r.Summary.TotalTasks)
	set(summary, "A6", "Pending tasks")
	set(summary, "B6", r.Summary.PendingTasks)
	set(summary, "A7", "Completed tasks")
	set(summary, "B7", r.Summary.CompletedTasks)
	set(summary, "A8", "Inventory items")
	set(summary, "B8", r.Summary.TotalInventoryItems)
	set(summary, "A9", "Inventory quantity")
	set(summary, "B9", r.Summary.TotalInventoryQuantity)
	set(summary, "A10", "Total expenses")
	set(summary, "B10", r.Summary.TotalExpenses)
	rowIdx := 11
	for _, season := range []string{"kharif", "rabi", "zaid"} {
		set(summary, fmt.Sprintf("A%d", rowIdx), "Expenses ("+season+")")
		set(summary, fmt.Sprintf("B%d", rowIdx), r.Summary.ExpensesBySeason[season])
		rowIdx++
	}

	if _, err := f.NewSheet("Tasks"); err != nil {
		return nil, err
	}
	set("Tasks", "A1", "Title")
	set("Tasks", "B1", "Date")
	set("Tasks", "C1", "Notes")
	for i, t := range r.Tasks {
		set("Tasks", fmt.Sprintf("A%d", i+2), t.Title)
		set("Tasks", fmt.Sprintf("B%d", i+2), t.Date)
		set("Tasks", fmt.Sprintf("C%d", i+2), t.Notes)
	}

	if _, err := f.NewSheet("Inventory"); err != nil {
		return nil, err
	}
	set("Inventory", "A1", "Item")
	set("Inventory", "B1", "Quantity")
	for i, inv := range r.Inventory {
		set("Inventory", fmt.Sprintf("A%d", i+2), inv.Item)
		set("Inventory", fmt.Sprintf("B%d", i+2), inv.Quantity)
	}

	if _, err := f.NewSheet("Expenses"); err != nil {
		return nil, err
	}
	set("Expenses", "A1", "Item")
	set("Expenses", "B1", "Amount")
	set("Expenses", "C1", "Season")
	for i, e := range r.Expenses {
		set("Expenses", fmt.Sprintf("A%d", i+2), e.Item)
		set("Expenses", fmt.Sprintf("B%d", i+2), e.Amount)
		set("Expenses", fmt.Sprintf("C%d", i+2), e.Season)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
