package common

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	speedBPSRegex  = regexp.MustCompile(`([\d.]+)\s*([kmgt]?)bps`)
	speedBareRegex = regexp.MustCompile(`([\d.]+)\s*([kmgt]?)`)
)

var speedMultipliers = map[string]float64{
	"":  1,
	"k": 1e3,
	"m": 1e6,
	"g": 1e9,
	"t": 1e12,
}

// ParseSpeed converts a nominal port speed such as "100Gbps" or "10g" to bits
// per second. Returns false when no number is present.
func ParseSpeed(speed string) (int64, bool) {
	s := strings.ToLower(strings.TrimSpace(speed))
	if s == "" {
		return 0, false
	}

	m := speedBPSRegex.FindStringSubmatch(s)
	if m == nil {
		m = speedBareRegex.FindStringSubmatch(s)
		if m == nil {
			return 0, false
		}
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return int64(value * speedMultipliers[m[2]]), true
}

// UtilizationPercent returns round(rate / speedBPS * 100, 2).
// A missing rate or a missing or zero speed yields 0.0: idle and unmeasurable
// interfaces are reported the same way.
func UtilizationPercent(rate *float64, speedBPS int64) float64 {
	if rate == nil || speedBPS <= 0 {
		return 0.0
	}
	pct := decimal.NewFromFloat(*rate).
		Div(decimal.NewFromInt(speedBPS)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	f, _ := pct.Float64()
	return f
}

// Utilization computes input and output utilization for a speed string
func Utilization(speed *string, inRate, outRate *float64) (in, out float64) {
	if speed == nil {
		return 0.0, 0.0
	}
	bps, ok := ParseSpeed(*speed)
	if !ok {
		return 0.0, 0.0
	}
	return UtilizationPercent(inRate, bps), UtilizationPercent(outRate, bps)
}
