package livescore

import "testing"

func trend(typeID int64, value float64, period int) NormalizedTrend {
	out := NormalizedTrend{TypeID: &typeID, Value: value}
	if period > 0 {
		out.PeriodNumber = &period
	}
	return out
}

func TestSumByType(t *testing.T) {
	t.Parallel()

	trends := []NormalizedTrend{
		trend(44, 3, 1),
		trend(44, 5, 2),
		trend(44, 2, 0),
		trend(34, 7, 1),
		{Value: 100},
	}

	if got := SumByType(nil, 44); got != 0 {
		t.Fatalf("expected 0 for nil input, got %v", got)
	}
	if got := SumByType([]NormalizedTrend{}, 44); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
	if got := SumByType(trends, 44); got != 10 {
		t.Fatalf("expected 10 without predicate, got %v", got)
	}
	if got := SumByType(trends, 44, InPeriod(2)); got != 5 {
		t.Fatalf("expected 5 for second period, got %v", got)
	}
	if got := SumByType(trends, 44, InPeriodOrUntagged(1)); got != 5 {
		t.Fatalf("expected 5 for first period with untagged, got %v", got)
	}
	if got := SumByType(trends, 44, InPeriod(1), InPeriod(2)); got != 0 {
		t.Fatalf("expected predicates to combine with AND, got %v", got)
	}
	if got := SumByType(trends, 99); got != 0 {
		t.Fatalf("expected 0 for unknown type, got %v", got)
	}
}

func TestSumByType_OverflowReportsZero(t *testing.T) {
	t.Parallel()

	trends := []NormalizedTrend{trend(44, 1e308, 1), trend(44, 1e308, 1)}
	if got := SumByType(trends, 44); got != 0 {
		t.Fatalf("expected 0 for an overflowing total, got %v", got)
	}

	mixed := []NormalizedTrend{trend(44, 1e308, 1), trend(44, 1e308, 1), trend(44, -1e308, 2), trend(44, -1e308, 2)}
	if got := SumByType(mixed, 44); got != 0 {
		t.Fatalf("expected 0 when the running total overflows, got %v", got)
	}
}
