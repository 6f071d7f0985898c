package weather

import (
	"math"
	"time"

	"golang.org/x/exp/rand"

	"github.com/agrosight/agro-insight-broker/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// forecastDays is the length of the mock forecast series
const forecastDays = 7

var conditions = []string{"clear", "partly cloudy", "cloudy", "light rain", "rain", "thunderstorm"}

// Simulate produces a plausible pseudo-random weather snapshot for the
// given coordinate. The generator is seeded from the coordinate so
// repeated requests for the same point agree, and the temperature
// baseline falls off with distance from the equator.
func Simulate(latitude, longitude float64, now time.Time) *Snapshot {
	seed := uint64(math.Abs(latitude*1e4)) + uint64(math.Abs(longitude*1e4))<<16
	src := rand.NewSource(seed)
	rng := rand.New(src)

	baseTemp := 32 - math.Abs(latitude)/3

	temperature := distuv.Normal{Mu: baseTemp, Sigma: 4, Src: src}
	humidity := distuv.Normal{Mu: 65, Sigma: 15, Src: src}
	wind := distuv.Gamma{Alpha: 2, Beta: 0.6, Src: src}
	precipitation := distuv.Exponential{Rate: 0.4, Src: src}

	snapshot := Snapshot{
		TemperatureC:    round1(temperature.Rand()),
		HumidityPct:     round1(clamp(humidity.Rand(), 5, 100)),
		WindSpeedMps:    round1(wind.Rand()),
		PrecipitationMm: round1(precipitation.Rand()),
		Latitude:        latitude,
		Longitude:       longitude,
		Timestamp:       now.UTC().Format(model.TimestampFormat),
		Simulated:       true,
	}
	snapshot.Condition = conditionFor(snapshot.PrecipitationMm, snapshot.HumidityPct)

	forecast := make([]ForecastDay, forecastDays)
	for i := range forecast {
		mid := temperature.Rand()
		spread := 2 + 4*rng.Float64()
		forecast[i] = ForecastDay{
			Day:             i + 1,
			TempMinC:        round1(mid - spread),
			TempMaxC:        round1(mid + spread),
			PrecipitationMm: round1(precipitation.Rand()),
		}
	}
	snapshot.Forecast = forecast

	return &snapshot
}

func conditionFor(precipitationMm, humidityPct float64) string {
	switch {
	case precipitationMm > 10:
		return conditions[5]
	case precipitationMm > 5:
		return conditions[4]
	case precipitationMm > 1:
		return conditions[3]
	case humidityPct > 80:
		return conditions[2]
	case humidityPct > 60:
		return conditions[1]
	}
	return conditions[0]
}

func clamp(value, low, high float64) float64 {
	return math.Max(low, math.Min(high, value))
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
