package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrostack/farmkeep/internal/ai"
	"github.com/agrostack/farmkeep/internal/repository"
)

const recentJournalLimit = 10

// InsightsHandler serves the LLM-backed advisory endpoints. Every
// endpoint degrades to a canned payload when the model is unreachable or
// returns something that is not the JSON shape we asked for.
type InsightsHandler struct {
	AI       ai.Client
	Journal  *repository.JournalRepo
	Products *repository.ProductRepo
	Log      zerolog.Logger
}

type chatReq struct {
	Message string `json:"message"`
}

func (h *InsightsHandler) MarketInsights(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	var crops []string
	if products, err := h.Products.ListByOwner(ctx, uid); err == nil {
		for _, p := range products {
			crops = append(crops, p.ProductName)
		}
	}

	var insights []ai.MarketInsight
	fallback := h.complete(ctx, ai.InsightsPrompt(crops), &insights) || len(insights) == 0
	if fallback {
		insights = ai.FallbackInsights()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "insights": insights, "fallback": fallback})
}

func (h *InsightsHandler) FarmingAlerts(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, _ := h.Journal.Recent(ctx, uid, recentJournalLimit)

	var alerts []ai.Alert
	fallback := h.complete(ctx, ai.AlertsPrompt(entries), &alerts) || len(alerts) == 0
	if fallback {
		alerts = ai.FallbackAlerts()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "alerts": alerts, "fallback": fallback})
}

func (h *InsightsHandler) SmartCalendar(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, _ := h.Journal.Recent(ctx, uid, recentJournalLimit)

	var items []ai.CalendarItem
	fallback := h.complete(ctx, ai.CalendarPrompt(entries), &items) || len(items) == 0
	if fallback {
		items = ai.FallbackCalendar()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "calendar": items, "fallback": fallback})
}

func (h *InsightsHandler) RiskBands(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	var bands []ai.RiskBand
	fallback := h.complete(ctx, ai.RiskPrompt(), &bands) || len(bands) == 0
	if fallback {
		bands = ai.FallbackRiskBands()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "risks": bands, "fallback": fallback})
}

// Chat is the one advisory endpoint that returns prose instead of JSON.
func (h *InsightsHandler) Chat(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req chatReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return fail(c, http.StatusBadRequest, "message is required")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	reply, err := h.AI.Complete(ctx, "You are a helpful agronomist for Indian smallholder farmers.", ai.ChatPrompt(req.Message))
	fallback := err != nil || strings.TrimSpace(reply) == ""
	if fallback {
		if err != nil {
			h.Log.Warn().Err(err).Msg("chat completion failed; serving fallback")
		}
		reply = ai.FallbackChatReply
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reply": reply, "fallback": fallback})
}

// complete runs one model call and decodes its reply into out. It
// reports true when the caller should serve the fallback payload.
func (h *InsightsHandler) complete(ctx context.Context, prompt string, out any) bool {
	raw, err := h.AI.Complete(ctx, ai.SystemPrompt, prompt)
	if err != nil {
		h.Log.Warn().Err(err).Msg("completion failed; serving fallback")
		return true
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), out); err != nil {
		h.Log.Warn().Err(err).Msg("completion was not valid JSON; serving fallback")
		return true
	}
	return false
}

// stripFences removes a markdown code fence the model sometimes wraps
// its JSON in despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
