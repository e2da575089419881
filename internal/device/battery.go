package device

import "github.com/vovakirdan/catan-dice/internal/core"

// Gauge reports the current battery voltage.
type Gauge interface {
	Voltage() float64
}

// StaticGauge always reports the same voltage. It stands in for the ADC on
// machines without a battery.
type StaticGauge float64

// Voltage implements Gauge.
func (g StaticGauge) Voltage() float64 {
	return float64(g)
}

// GaugeFunc adapts a function to the Gauge interface.
type GaugeFunc func() float64

// Voltage implements Gauge.
func (f GaugeFunc) Voltage() float64 {
	return f()
}

// batteryLevels maps LiPo cell voltage to a remaining charge, highest first.
var batteryLevels = []struct {
	minVoltage float64
	percent    int
}{
	{4.05, 100},
	{4.00, 90},
	{3.90, 80},
	{3.80, 70},
	{3.70, 50},
	{3.60, 30},
	{3.50, 20},
	{3.40, 10},
}

// PercentFromVoltage converts a cell voltage to a charge percentage.
func PercentFromVoltage(v float64) int {
	for _, level := range batteryLevels {
		if v >= level.minVoltage {
			return level.percent
		}
	}
	return 0
}

// BatteryColor returns the icon color for a charge percentage.
func BatteryColor(percent int) core.Color {
	switch {
	case percent <= 20:
		return core.ColorRed
	case percent <= 50:
		return core.ColorOrange
	default:
		return core.ColorGreen
	}
}

// batteryIcon renders the charge as four segments, e.g. "[██··]".
func batteryIcon(percent int) string {
	const segments = 4
	filled := (percent*segments + 99) / 100
	filled = core.Clamp(filled, 0, segments)

	icon := make([]rune, 0, segments+2)
	icon = append(icon, '[')
	for i := 0; i < segments; i++ {
		if i < filled {
			icon = append(icon, '█')
		} else {
			icon = append(icon, '·')
		}
	}
	return string(append(icon, ']'))
}
