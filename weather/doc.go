// Package weather turns a weather observation into the cost multiplier used
// for outdoor edges, and provides the provider/fetcher pair that obtains the
// observation before a search starts.
//
// The multiplier is a strict two-regime switch, not a continuous function:
//
//	feels-like > 55°F and no precipitation → FavorableMultiplier   (0.001)
//	otherwise                               → UnfavorableMultiplier (1000)
//
// Feels-like temperatures are Kelvin, as reported by OpenWeatherMap's
// default unit system. The precipitating conditions are matched exactly
// against {"Rain", "Snow", "Thunderstorm"}.
//
// Fetching is kept apart from the multiplier: Fetcher resolves a snapshot
// (with bounded retry) before any search runs, and callers fall back to the
// balanced preference when it fails.
package weather
