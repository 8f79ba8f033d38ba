package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrostack/farmkeep/internal/model"
	"github.com/agrostack/farmkeep/internal/report"
	"github.com/agrostack/farmkeep/internal/repository"
)

// ReportHandler builds the seasonal report and streams it as JSON, PDF
// or a spreadsheet.
type ReportHandler struct {
	Users     *repository.UserRepo
	Tasks     *repository.TaskRepo
	Inventory *repository.InventoryRepo
	Expenses  *repository.ExpenseRepo
	Log       zerolog.Logger
}

func (h *ReportHandler) Seasonal(c echo.Context) error {
	r, ok := h.build(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "report": r})
}

func (h *ReportHandler) PDF(c echo.Context) error {
	r, ok := h.build(c)
	if !ok {
		return nil
	}
	data, err := report.RenderPDF(r)
	if err != nil {
		h.Log.Error().Err(err).Msg("pdf render failed")
		return fail(c, http.StatusInternalServerError, "report generation failed")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="seasonal_report_%s.pdf"`, time.Now().Format("20060102")))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func (h *ReportHandler) XLSX(c echo.Context) error {
	r, ok := h.build(c)
	if !ok {
		return nil
	}
	data, err := report.RenderXLSX(r)
	if err != nil {
		h.Log.Error().Err(err).Msg("spreadsheet render failed")
		return fail(c, http.StatusInternalServerError, "report generation failed")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="seasonal_report_%s.xlsx"`, time.Now().Format("20060102")))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// build loads everything the report aggregates. On failure the error
// response has already been written and ok is false.
func (h *ReportHandler) build(c echo.Context) (r *report.Seasonal, ok bool) {
	uid, err := getUserID(c)
	if err != nil {
		_ = fail(c, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		_ = fail(c, http.StatusInternalServerError, "query failed")
		return nil, false
	}
	var (
		tasks     []model.Task
		inventory []model.Inventory
		expenses  []model.Expense
	)
	if tasks, err = h.Tasks.ListByUser(ctx, uid); err == nil {
		if inventory, err = h.Inventory.ListByUser(ctx, uid); err == nil {
			expenses, err = h.Expenses.ListByUser(ctx, uid)
		}
	}
	if err != nil {
		_ = fail(c, http.StatusInternalServerError, "query failed")
		return nil, false
	}
	return report.BuildSeasonal(u, tasks, inventory, expenses, time.Now()), true
}
