// Package shipping estimates delivery fees from zip codes alone.
// The distance proxy is intentionally crude: without a geocoding
// provider, the numeric difference between zip prefixes stands in for
// kilometers. The fee rule is R$ 5 per started block of 10 km with a
// R$ 5 minimum charge.
package shipping

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	costPerTenKm = 5
	minimumCost  = 5
	prefixLen    = 5
)

// EstimateDistanceKm approximates the distance between two zip codes
// using the first five digits of each, at 200 units of prefix
// difference per kilometer. Never returns less than 1 km.
func EstimateDistanceKm(originZip, destZip string) float64 {
	origin := zipPrefix(originZip)
	dest := zipPrefix(destZip)

	km := math.Abs(float64(origin-dest)) / 200

	return math.Max(km, 1)
}

// Cost converts a distance into the delivery fee: each started 10 km
// block costs R$ 5, charged at least once.
func Cost(distanceKm float64) decimal.Decimal {
	blocks := int64(math.Ceil(distanceKm / 10))
	cost := blocks * costPerTenKm

	if cost < minimumCost {
		cost = minimumCost
	}
	return decimal.NewFromInt(cost)
}

// Estimate is the fee for delivering from originZip to destZip.
// Pure and deterministic: identical inputs always yield the same fee.
func Estimate(originZip, destZip string) decimal.Decimal {
	return Cost(EstimateDistanceKm(originZip, destZip))
}

func zipPrefix(zip string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, zip)

	if len(digits) > prefixLen {
		digits = digits[:prefixLen]
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
