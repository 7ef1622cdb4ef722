package livescore

import "math"

// TrendPredicate filters trends in SumByType.
type TrendPredicate func(NormalizedTrend) bool

// InPeriod matches trends explicitly tagged with the period number.
func InPeriod(period int) TrendPredicate {
	return func(trend NormalizedTrend) bool {
		return trend.PeriodNumber != nil && *trend.PeriodNumber == period
	}
}

// InPeriodOrUntagged also matches trends that carry no period tag.
func InPeriodOrUntagged(period int) TrendPredicate {
	return func(trend NormalizedTrend) bool {
		return trend.PeriodNumber == nil || *trend.PeriodNumber == period
	}
}

// SumByType adds the values of trends with the given type id that satisfy all
// predicates. A total that overflows to a non-finite value reports 0.
func SumByType(trends []NormalizedTrend, typeID int64, predicates ...TrendPredicate) float64 {
	var total float64
	for _, trend := range trends {
		if trend.TypeID == nil || *trend.TypeID != typeID {
			continue
		}
		if !matchesAll(trend, predicates) {
			continue
		}
		total += trend.Value
	}
	return finiteOrZero(total)
}

func finiteOrZero(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

func matchesAll(trend NormalizedTrend, predicates []TrendPredicate) bool {
	for _, predicate := range predicates {
		if predicate != nil && !predicate(trend) {
			return false
		}
	}
	return true
}
