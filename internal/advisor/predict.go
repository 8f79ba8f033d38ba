// Package advisor ranks crops for a set of weather readings.
//
// The ranking is a fixed threshold table, not a trained model: the
// numbers come from the product's original rule set and should be
// treated as placeholders for a future data-driven ranker, which is why
// the package exposes only the ranked-crops interface and keeps the
// table private.
package advisor

// Prediction is one ranked crop with a confidence in [0,1].
type Prediction struct {
	Crop       string  `json:"crop"`
	Confidence float64 `json:"confidence"`
}

// Predict returns exactly three (crop, confidence) pairs selected by four
// mutually exclusive threshold branches over temperature (°C), relative
// humidity (%) and rainfall (mm).
func Predict(temperature, humidity, rainfall float64) []Prediction {
	switch {
	case temperature > 30 && humidity > 75 && rainfall > 150:
		// hot, humid, high rainfall
		return []Prediction{
			{Crop: "Rice", Confidence: 0.92},
			{Crop: "Sugarcane", Confidence: 0.85},
			{Crop: "Cotton", Confidence: 0.78},
		}
	case temperature < 24 && rainfall < 80:
		// cool and dry
		return []Prediction{
			{Crop: "Wheat", Confidence: 0.90},
			{Crop: "Barley", Confidence: 0.84},
			{Crop: "Mustard", Confidence: 0.76},
		}
	case humidity < 55:
		// warm with low humidity
		return []Prediction{
			{Crop: "Cotton", Confidence: 0.88},
			{Crop: "Millet", Confidence: 0.81},
			{Crop: "Sorghum", Confidence: 0.73},
		}
	default:
		return []Prediction{
			{Crop: "Maize", Confidence: 0.85},
			{Crop: "Soybean", Confidence: 0.79},
			{Crop: "Groundnut", Confidence: 0.72},
		}
	}
}
