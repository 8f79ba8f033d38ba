package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskUpsertByTitle(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/task", token, map[string]string{
		"title": "Irrigate field A", "date": "2026-09-05", "notes": "north plot",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Task added", decode(t, rec)["message"])

	// same title again updates in place
	rec = v.do(http.MethodPost, "/api/task", token, map[string]string{
		"title": "Irrigate field A", "date": "2026-09-08", "notes": "postponed",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task updated", decode(t, rec)["message"])

	rec = v.do(http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := decode(t, rec)["tasks"].([]any)
	require.Len(t, tasks, 1)
	task := tasks[0].(map[string]any)
	assert.Equal(t, "2026-09-08", task["date"])
	assert.Equal(t, "postponed", task["notes"])
}

func TestTaskRequiresTitleAndDate(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	for _, body := range []map[string]string{
		{"date": "2026-09-05"},
		{"title": "Irrigate field A"},
		{},
	} {
		rec := v.do(http.MethodPost, "/api/task", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["error"], "Title and date")
	}
}

func TestDeleteTaskEnforcesOwnership(t *testing.T) {
	v := newEnv(t)
	owner := v.register("owner", "password1")
	other := v.register("other", "password1")

	rec := v.do(http.MethodPost, "/api/task", owner, map[string]string{"title": "Weed field", "date": "2026-09-10"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["task"].(map[string]any)["id"].(float64)

	rec = v.do(http.MethodPost, "/api/delete_task", other, map[string]any{"id": id})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = v.do(http.MethodPost, "/api/delete_task", owner, map[string]any{"id": id})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = v.do(http.MethodGet, "/api/tasks", owner, nil)
	assert.Empty(t, decode(t, rec)["tasks"])
}

func TestInventoryAccumulates(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/inventory", token, map[string]any{"item": "Urea", "quantity": 10})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = v.do(http.MethodPost, "/api/inventory", token, map[string]any{"item": "Urea", "quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = v.do(http.MethodGet, "/api/inventory_list", token, nil)
	items := decode(t, rec)["inventory"].([]any)
	require.Len(t, items, 1)
	assert.EqualValues(t, 15, items[0].(map[string]any)["quantity"])
}

func TestInventoryRejectsNonPositiveQuantity(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/inventory", token, map[string]any{"item": "Urea", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpenseSeasonValidation(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/expense", token, map[string]any{
		"item": "Diesel", "amount": 1200.5, "season": "monsoon",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "kharif, rabi or zaid")

	rec = v.do(http.MethodPost, "/api/expense", token, map[string]any{
		"item": "Diesel", "amount": 1200.5, "season": "kharif",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = v.do(http.MethodGet, "/api/expenses", token, nil)
	expenses := decode(t, rec)["expenses"].([]any)
	require.Len(t, expenses, 1)
	assert.Equal(t, 1200.5, expenses[0].(map[string]any)["amount"])
}

func TestJournalActivityValidation(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")

	rec := v.do(http.MethodPost, "/api/journal", token, map[string]string{
		"activity": "daydreaming", "activity_details": "clouds", "date": "2026-09-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "Invalid activity")

	rec = v.do(http.MethodPost, "/api/journal", token, map[string]string{
		"activity": "pest_control", "activity_details": "sprayed neem oil", "date": "2026-09-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = v.do(http.MethodGet, "/api/journal_entries", token, nil)
	entries := decode(t, rec)["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "pest_control", entries[0].(map[string]any)["activity"])
}

func TestSendReminder(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")
	today := time.Now().Format("2006-01-02")

	// nothing due
	rec := v.do(http.MethodPost, "/api/send_reminder", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 0, body["count"])

	rec = v.do(http.MethodPost, "/api/task", token, map[string]string{
		"title": "Harvest plot 3", "date": today, "notes": "before noon",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = v.do(http.MethodPost, "/api/task", token, map[string]string{
		"title": "Next week", "date": "2099-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = v.do(http.MethodPost, "/api/send_reminder", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 1, body["count"])

	require.Len(t, v.pub.reminders, 1)
	ev := v.pub.reminders[0]
	assert.Equal(t, "ravi", ev.Username)
	assert.Equal(t, "farm@example.com", ev.Email)
	assert.Equal(t, []string{"Harvest plot 3"}, ev.Titles)
}

func TestSendReminderPublishFailure(t *testing.T) {
	v := newEnv(t)
	token := v.register("ravi", "password1")
	today := time.Now().Format("2006-01-02")

	rec := v.do(http.MethodPost, "/api/task", token, map[string]string{"title": "Water", "date": today})
	require.Equal(t, http.StatusCreated, rec.Code)

	v.pub.fail = true
	rec = v.do(http.MethodPost, "/api/send_reminder", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.EqualValues(t, 1, body["count"])
}
