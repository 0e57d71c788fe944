package weather

const (
	// FavorableMultiplier makes outdoor edges nearly free.
	FavorableMultiplier = 0.001

	// UnfavorableMultiplier makes outdoor edges very expensive.
	UnfavorableMultiplier = 1000.0

	// ComfortThresholdF is the feels-like temperature (°F) that must be
	// strictly exceeded for favorable conditions.
	ComfortThresholdF = 55.0
)

// Conditions that count as precipitation.
const (
	ConditionRain         = "Rain"
	ConditionSnow         = "Snow"
	ConditionThunderstorm = "Thunderstorm"
)

// Info is an immutable weather snapshot. Temperatures are Kelvin.
type Info struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Condition   string  `json:"condition"`
}

// Fahrenheit converts a Kelvin temperature to degrees Fahrenheit.
func Fahrenheit(kelvin float64) float64 {
	return (kelvin-273.15)*9/5 + 32
}

// IsPrecipitating reports whether condition is one of Rain, Snow or
// Thunderstorm. The match is exact and case-sensitive.
func IsPrecipitating(condition string) bool {
	switch condition {
	case ConditionRain, ConditionSnow, ConditionThunderstorm:
		return true
	default:
		return false
	}
}

// Favorable reports whether w invites outdoor travel.
func (w Info) Favorable() bool {
	return favorable(Fahrenheit(w.FeelsLike), w.Condition)
}

func favorable(fahrenheit float64, condition string) bool {
	return fahrenheit > ComfortThresholdF && !IsPrecipitating(condition)
}

// Multiplier returns the scalar applied to outdoor edge distances under w.
func Multiplier(w Info) float64 {
	if w.Favorable() {
		return FavorableMultiplier
	}

	return UnfavorableMultiplier
}
