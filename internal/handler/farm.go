package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrostack/farmkeep/internal/model"
	"github.com/agrostack/farmkeep/internal/queue"
	"github.com/agrostack/farmkeep/internal/repository"
	"github.com/agrostack/farmkeep/internal/service"
)

// FarmHandler serves the dashboard CRUD: tasks, inventory, expenses and
// the activity journal, plus the task reminder dispatch.
type FarmHandler struct {
	Users     *repository.UserRepo
	Tasks     *repository.TaskRepo
	Inventory *repository.InventoryRepo
	Expenses  *repository.ExpenseRepo
	Journal   *repository.JournalRepo
	Publisher service.Publisher
	Reminder  string // recipient address for task reminder mail
	Log       zerolog.Logger
}

type taskReq struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

type idReq struct {
	ID uint64 `json:"id"`
}

type inventoryReq struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

type expenseReq struct {
	Item   string  `json:"item"`
	Amount float64 `json:"amount"`
	Season string  `json:"season"`
}

type journalReq struct {
	Activity        string `json:"activity"`
	ActivityDetails string `json:"activity_details"`
	Date            string `json:"date"`
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// UpsertTask creates a task, or updates date and notes when the user
// already has a task with that title.
func (h *FarmHandler) UpsertTask(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req taskReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Title == "" || req.Date == "" {
		return fail(c, http.StatusBadRequest, "Title and date are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	task, created, err := h.Tasks.Upsert(ctx, uid, req.Title, req.Date, req.Notes)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "save task failed")
	}
	status := http.StatusOK
	msg := "Task updated"
	if created {
		status = http.StatusCreated
		msg = "Task added"
	}
	return c.JSON(status, echo.Map{"success": true, "message": msg, "task": task})
}

func (h *FarmHandler) ListTasks(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	tasks, err := h.Tasks.ListByUser(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "tasks": tasks})
}

func (h *FarmHandler) DeleteTask(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req idReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return fail(c, http.StatusBadRequest, "id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Tasks.Delete(ctx, req.ID, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Task not found or not authorized")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Task deleted"})
}

// AddInventory accumulates quantity into an existing (user, item) row or
// creates a fresh one.
func (h *FarmHandler) AddInventory(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req inventoryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Item == "" || req.Quantity <= 0 {
		return fail(c, http.StatusBadRequest, "Item and positive quantity are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	row, created, err := h.Inventory.Add(ctx, uid, req.Item, req.Quantity)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "save inventory failed")
	}
	status := http.StatusOK
	msg := "Inventory updated"
	if created {
		status = http.StatusCreated
		msg = "Inventory added"
	}
	return c.JSON(status, echo.Map{"success": true, "message": msg, "inventory": row})
}

func (h *FarmHandler) ListInventory(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Inventory.ListByUser(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "inventory": items})
}

func (h *FarmHandler) DeleteInventory(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req idReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return fail(c, http.StatusBadRequest, "id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Inventory.Delete(ctx, req.ID, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Item not found or not authorized")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Item deleted"})
}

func (h *FarmHandler) AddExpense(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req expenseReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Item == "" || req.Amount <= 0 {
		return fail(c, http.StatusBadRequest, "Item and positive amount are required")
	}
	if !model.ValidSeason(req.Season) {
		return fail(c, http.StatusBadRequest, "Season must be kharif, rabi or zaid")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	exp, err := h.Expenses.Create(ctx, uid, req.Item, req.Amount, req.Season)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "save expense failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Expense added", "expense": exp})
}

func (h *FarmHandler) ListExpenses(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	expenses, err := h.Expenses.ListByUser(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "expenses": expenses})
}

func (h *FarmHandler) DeleteExpense(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req idReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return fail(c, http.StatusBadRequest, "id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Expenses.Delete(ctx, req.ID, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Expense not found or not authorized")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Expense deleted"})
}

func (h *FarmHandler) AddJournal(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req journalReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.ActivityDetails == "" || req.Date == "" {
		return fail(c, http.StatusBadRequest, "Activity details and date are required")
	}
	if !model.ValidActivity(req.Activity) {
		return fail(c, http.StatusBadRequest, "Invalid activity type")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entry, err := h.Journal.Create(ctx, uid, req.Activity, req.ActivityDetails, req.Date)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "save journal failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Journal entry added", "entry": entry})
}

func (h *FarmHandler) ListJournal(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, err := h.Journal.ListByUser(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "entries": entries})
}

func (h *FarmHandler) DeleteJournal(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req idReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return fail(c, http.StatusBadRequest, "id required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Journal.Delete(ctx, req.ID, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Entry not found or not authorized")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Entry deleted"})
}

// SendReminder publishes a reminder event for the user's tasks due today.
// The email itself is sent by the queue consumer; here we only report
// whether the dispatch was accepted.
func (h *FarmHandler) SendReminder(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	today := time.Now().Format("2006-01-02")
	tasks, err := h.Tasks.ListDueOn(ctx, uid, today)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if len(tasks) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "No tasks due today", "count": 0})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}

	ev := queue.TaskReminderEvent{
		UserID:   uid,
		Username: u.Username,
		Email:    h.Reminder,
		Date:     today,
	}
	for _, t := range tasks {
		ev.Titles = append(ev.Titles, t.Title)
		ev.Notes = append(ev.Notes, t.Notes)
	}

	if err := h.Publisher.PublishTaskReminder(ctx, ev); err != nil {
		h.Log.Error().Err(err).Uint64("user_id", uid).Msg("reminder publish failed")
		return c.JSON(http.StatusOK, echo.Map{
			"success": false,
			"message": "Reminder could not be dispatched",
			"count":   len(tasks),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Reminder dispatched",
		"count":   len(tasks),
	})
}
