package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agrostack/farmkeep/internal/advisor"
	"github.com/agrostack/farmkeep/internal/weather"
)

// AdvisorHandler serves the crop recommendation table and the weather
// passthrough endpoints.
type AdvisorHandler struct {
	Weather *weather.Client
	Log     zerolog.Logger
}

type predictReq struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
}

// Predict runs the rule table over caller-supplied climate figures.
func (h *AdvisorHandler) Predict(c echo.Context) error {
	var req predictReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	preds := advisor.Predict(req.Temperature, req.Humidity, req.Rainfall)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "predictions": preds})
}

// CropRecommendations fetches current conditions for the coordinate and
// feeds them through the same rule table.
func (h *AdvisorHandler) CropRecommendations(c echo.Context) error {
	lat, lon, err := latLon(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "lat and lon are required")
	}
	if !h.Weather.Enabled() {
		return fail(c, http.StatusServiceUnavailable, "Weather service not configured")
	}

	cur, err := h.Weather.CurrentWeather(c.Request().Context(), lat, lon)
	if err != nil {
		h.Log.Error().Err(err).Msg("weather fetch failed")
		return fail(c, http.StatusBadGateway, "Weather service unavailable")
	}
	preds := advisor.Predict(cur.Temperature, cur.Humidity, cur.Rainfall)
	return c.JSON(http.StatusOK, echo.Map{
		"success":         true,
		"weather":         cur,
		"recommendations": preds,
	})
}

func (h *AdvisorHandler) CurrentWeather(c echo.Context) error {
	lat, lon, err := latLon(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "lat and lon are required")
	}
	if !h.Weather.Enabled() {
		return fail(c, http.StatusServiceUnavailable, "Weather service not configured")
	}
	cur, err := h.Weather.CurrentWeather(c.Request().Context(), lat, lon)
	if err != nil {
		h.Log.Error().Err(err).Msg("weather fetch failed")
		return fail(c, http.StatusBadGateway, "Weather service unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "weather": cur})
}

func (h *AdvisorHandler) WeatherForecast(c echo.Context) error {
	lat, lon, err := latLon(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "lat and lon are required")
	}
	if !h.Weather.Enabled() {
		return fail(c, http.StatusServiceUnavailable, "Weather service not configured")
	}
	entries, err := h.Weather.Forecast(c.Request().Context(), lat, lon)
	if err != nil {
		h.Log.Error().Err(err).Msg("forecast fetch failed")
		return fail(c, http.StatusBadGateway, "Weather service unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "forecast": entries})
}

func (h *AdvisorHandler) Geocode(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return fail(c, http.StatusBadRequest, "q is required")
	}
	if !h.Weather.Enabled() {
		return fail(c, http.StatusServiceUnavailable, "Weather service not configured")
	}
	places, err := h.Weather.Geocode(c.Request().Context(), query)
	if err != nil {
		h.Log.Error().Err(err).Msg("geocode failed")
		return fail(c, http.StatusBadGateway, "Weather service unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "results": places})
}

func latLon(c echo.Context) (float64, float64, error) {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}
