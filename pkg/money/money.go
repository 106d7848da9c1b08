// Package money normalizes user-supplied monetary amounts.
//
// Amounts arrive from the client as strings that may carry thousands
// separators ("119,999.99") or as raw numbers. Every financial value stored
// by the service passes through Sanitize, so totals are always sums of
// 2-decimal values.
package money

import (
	"math"
	"strconv"
	"strings"
)

// epsilon nudges values upward before rounding so binary float artifacts
// (19.005 stored as 19.004999...) still round half-up to 19.01.
const epsilon = 1e-9

// Sanitize parses a monetary amount from its wire representation and rounds
// it to 2 decimal places, half-up. Absent or unparsable input yields 0.
func Sanitize(raw string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return Round(v)
}

// Round rounds v to 2 decimal places with the epsilon correction.
func Round(v float64) float64 {
	if v >= 0 {
		return math.Floor((v+epsilon)*100+0.5) / 100
	}
	return -math.Floor((-v+epsilon)*100+0.5) / 100
}
