// Package report aggregates a user's farm data into the seasonal report
// and renders it as JSON-ready structs, PDF or XLSX.
package report

import (
	"time"

	"github.com/agrostack/farmkeep/internal/model"
)

// Summary holds the headline numbers of a seasonal report.
type Summary struct {
	TotalTasks             int                `json:"total_tasks"`
	PendingTasks           int                `json:"pending_tasks"`
	CompletedTasks         int                `json:"completed_tasks"`
	TotalInventoryItems    int                `json:"total_inventory_items"`
	TotalInventoryQuantity int                `json:"total_inventory_quantity"`
	TotalExpenses          float64            `json:"total_expenses"`
	ExpensesBySeason       map[string]float64 `json:"expenses_by_season"`
}

// Seasonal is the full report payload.
type Seasonal struct {
	UserInfo struct {
		Username string `json:"username"`
		UserID   uint64 `json:"user_id"`
	} `json:"user_info"`
	Summary     Summary           `json:"summary"`
	Tasks       []model.Task      `json:"tasks"`
	Inventory   []model.Inventory `json:"inventory"`
	Expenses    []model.Expense   `json:"expenses"`
	GeneratedOn string            `json:"generated_on"`
	GeneratedAt string            `json:"generated_at"`
}

// BuildSeasonal assembles the report. A task whose date is today or
// earlier counts as completed, matching the dashboard's convention.
func BuildSeasonal(user *model.User, tasks []model.Task, inventory []model.Inventory, expenses []model.Expense, now time.Time) *Seasonal {
	r := &Seasonal{
		Tasks:       tasks,
		Inventory:   inventory,
		Expenses:    expenses,
		GeneratedOn: now.Format("2006-01-02"),
		GeneratedAt: now.Format("2006-01-02 15:04:05"),
	}
	r.UserInfo.Username = user.Username
	r.UserInfo.UserID = user.ID

	r.Summary.ExpensesBySeason = map[string]float64{
		model.SeasonKharif: 0,
		model.SeasonRabi:   0,
		model.SeasonZaid:   0,
	}
	today := now.Format("2006-01-02")
	for _, t := range tasks {
		if t.Date != "" && t.Date <= today {
			r.Summary.CompletedTasks++
		} else {
			r.Summary.PendingTasks++
		}
	}
	r.Summary.TotalTasks = len(tasks)

	r.Summary.TotalInventoryItems = len(inventory)
	for _, inv := range inventory {
		r.Summary.TotalInventoryQuantity += inv.Quantity
	}

	for _, e := range expenses {
		r.Summary.ExpensesBySeason[e.Season] += e.Amount
		r.Summary.TotalExpenses += e.Amount
	}
	return r
}
