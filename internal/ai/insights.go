package ai

import (
	"fmt"
	"strings"

	"github.com/agrostack/farmkeep/internal/model"
)

// Alert is one advisory card on the dashboard.
type Alert struct {
	Type     string `json:"type"`
	Icon     string `json:"icon"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// MarketInsight is one crop price/trend summary.
type MarketInsight struct {
	Crop         string `json:"crop"`
	Trend        string `json:"trend"`
	PriceOutlook string `json:"price_outlook"`
	Advice       string `json:"advice"`
}

// CalendarItem is one suggested activity in the smart calendar.
type CalendarItem struct {
	Month    string `json:"month"`
	Activity string `json:"activity"`
	Detail   string `json:"detail"`
}

// RiskBand is one labelled risk level for the coming weeks.
type RiskBand struct {
	Risk  string `json:"risk"`
	Level string `json:"level"`
	Note  string `json:"note"`
}

const SystemPrompt = "You are an experienced Indian agronomist advising smallholder farmers. Reply ONLY with valid JSON, no prose around it."

// AlertsPrompt embeds the user's recent journal activity so the model
// grounds its advisories in what actually happened on the farm.
func AlertsPrompt(entries []model.Journal) string {
	var b strings.Builder
	b.WriteString("Based on the farmer's recent activity log, produce up to 4 farming alerts as a JSON array of {\"type\",\"icon\",\"title\",\"message\",\"priority\"} objects. type is one of info|warning|critical, priority one of low|medium|high.\n\nRECENT ACTIVITY:\n")
	if len(entries) == 0 {
		b.WriteString("(no journal entries recorded)\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", e.Date, e.Activity, e.ActivityDetails)
	}
	return b.String()
}

// InsightsPrompt asks for market commentary on the crops the user sells
// or logs.
func InsightsPrompt(crops []string) string {
	if len(crops) == 0 {
		crops = []string{"rice", "wheat", "cotton"}
	}
	return fmt.Sprintf("Give current Indian mandi market insights for these crops: %s. Reply as a JSON array of {\"crop\",\"trend\",\"price_outlook\",\"advice\"} objects.", strings.Join(crops, ", "))
}

// CalendarPrompt asks for a month-by-month activity plan.
func CalendarPrompt(entries []model.Journal) string {
	var b strings.Builder
	b.WriteString("Produce a 6-month farming calendar as a JSON array of {\"month\",\"activity\",\"detail\"} objects, adjusted for the activity below.\n\nACTIVITY LOG:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s: %s\n", e.Date, e.Activity)
	}
	return b.String()
}

// RiskPrompt asks for banded risk levels.
func RiskPrompt() string {
	return "List the main near-term risks for a smallholder farm in India as a JSON array of {\"risk\",\"level\",\"note\"} objects where level is one of low|medium|high."
}

// ChatPrompt wraps a free-form farmer question.
func ChatPrompt(question string) string {
	return fmt.Sprintf("Answer the farmer's question concisely in plain text (not JSON): %s", question)
}

// Hand-written fallbacks served when the model call or JSON parse fails.

func FallbackAlerts() []Alert {
	return []Alert{
		{Type: "info", Icon: "💧", Title: "Irrigation Check", Message: "Check soil moisture levels; water early morning to reduce evaporation.", Priority: "medium"},
		{Type: "warning", Icon: "🐛", Title: "Pest Scouting", Message: "Inspect leaves for pest activity; early detection halves treatment cost.", Priority: "medium"},
		{Type: "info", Icon: "🌱", Title: "Soil Health", Message: "Consider a soil test before the next fertilizer application.", Priority: "low"},
	}
}

func FallbackInsights() []MarketInsight {
	return []MarketInsight{
		{Crop: "Rice", Trend: "stable", PriceOutlook: "steady demand through the season", Advice: "Hold stock until festival demand picks up."},
		{Crop: "Wheat", Trend: "rising", PriceOutlook: "procurement prices firming", Advice: "Sell in staggered lots."},
		{Crop: "Cotton", Trend: "volatile", PriceOutlook: "export demand uncertain", Advice: "Watch weekly mandi rates before committing."},
	}
}

func FallbackCalendar() []CalendarItem {
	return []CalendarItem{
		{Month: "June", Activity: "Sowing", Detail: "Kharif sowing with onset of monsoon."},
		{Month: "July", Activity: "Fertilizing", Detail: "First top dressing after establishment."},
		{Month: "August", Activity: "Pest control", Detail: "Scout weekly; humid weather raises pest pressure."},
		{Month: "September", Activity: "Irrigation", Detail: "Supplement if monsoon breaks exceed a week."},
		{Month: "October", Activity: "Harvesting", Detail: "Harvest kharif crop at physiological maturity."},
		{Month: "November", Activity: "Soil preparation", Detail: "Prepare fields for rabi sowing."},
	}
}

func FallbackRiskBands() []RiskBand {
	return []RiskBand{
		{Risk: "Pest outbreak", Level: "medium", Note: "Humidity favours sucking pests."},
		{Risk: "Water stress", Level: "low", Note: "Reservoir levels adequate."},
		{Risk: "Price volatility", Level: "medium", Note: "Track mandi rates weekly."},
	}
}

const FallbackChatReply = "I could not reach the advisory service right now. For urgent agronomy questions, contact your local Krishi Vigyan Kendra."
