package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrostack/farmkeep/internal/model"
)

func testReport() *Seasonal {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	user := &model.User{ID: 7, Username: "asha"}
	tasks := []model.Task{
		{ID: 1, Title: "Irrigate field A", Date: "2026-08-30"},
		{ID: 2, Title: "Spray neem oil", Date: "2026-09-01"},
		{ID: 3, Title: "Buy seed", Date: "2026-09-10"},
		{ID: 4, Title: "Undated task"},
	}
	inventory := []model.Inventory{
		{ID: 1, Item: "Urea", Quantity: 40},
		{ID: 2, Item: "Seed bags", Quantity: 12},
	}
	expenses := []model.Expense{
		{ID: 1, Item: "Diesel", Amount: 1200, Season: model.SeasonKharif},
		{ID: 2, Item: "Labour", Amount: 800, Season: model.SeasonKharif},
		{ID: 3, Item: "Seed", Amount: 500, Season: model.SeasonRabi},
	}
	return BuildSeasonal(user, tasks, inventory, expenses, now)
}

func TestBuildSeasonal(t *testing.T) {
	r := testReport()

	assert.Equal(t, "asha", r.UserInfo.Username)
	assert.EqualValues(t, 7, r.UserInfo.UserID)
	assert.Equal(t, "2026-09-01", r.GeneratedOn)
	assert.Equal(t, "2026-09-01 10:30:00", r.GeneratedAt)

	assert.Equal(t, 4, r.Summary.TotalTasks)
	// dated on or before today counts completed; undated stays pending
	assert.Equal(t, 2, r.Summary.CompletedTasks)
	assert.Equal(t, 2, r.Summary.PendingTasks)

	assert.Equal(t, 2, r.Summary.TotalInventoryItems)
	assert.Equal(t, 52, r.Summary.TotalInventoryQuantity)

	assert.Equal(t, 2500.0, r.Summary.TotalExpenses)
	assert.Equal(t, 2000.0, r.Summary.ExpensesBySeason[model.SeasonKharif])
	assert.Equal(t, 500.0, r.Summary.ExpensesBySeason[model.SeasonRabi])
	assert.Equal(t, 0.0, r.Summary.ExpensesBySeason[model.SeasonZaid])
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(testReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderXLSX(t *testing.T) {
	data, err := RenderXLSX(testReport())
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
	assert.Greater(t, len(data), 1000)
}
