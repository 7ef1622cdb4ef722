package livescore

import "strings"

const (
	NoMinuteLabel    = "-"
	DefaultHomeLabel = "Home"
	DefaultAwayLabel = "Away"
)

// minuteAccessors is the ordered resolution chain for the match clock.
// The first accessor that yields a value wins.
var minuteAccessors = []func(map[string]any) (MinuteDisplay, bool){
	activePeriodMinute,
	numericMinuteAt("time", "minute"),
	numericMinuteAt("scores", "minute"),
	labelAt("state", "short_name"),
	labelAt("time", "status"),
}

// Trend field chains, tried in order.
var (
	trendTypeIDPaths = [][]string{{"type_id"}, {"type", "id"}, {"trend_type_id"}}
	trendValuePaths  = [][]string{{"value"}, {"data"}, {"count"}}
	trendPeriodChain = []func(map[string]any) (int, bool){
		periodNumberAt("period", "number"),
		periodNumberAt("period_number"),
		periodFromName,
	}
)

// Statistic field chains used by the dangerous attacks fallback.
var (
	statisticTypeIDPaths = [][]string{{"type_id"}, {"type", "id"}}
	statisticValuePaths  = [][]string{{"value"}, {"data", "value"}}
	statisticPeriodChain = []func(map[string]any) (int, bool){
		periodNumberAt("period", "number"),
	}
)

var participantLocationPaths = [][]string{{"meta", "location"}, {"location"}}

// ExtractMinute returns the current minute of the active period, a top-level
// minute field, or a short status label, falling back to "-".
func ExtractMinute(fixture RawFixture) MinuteDisplay {
	for _, accessor := range minuteAccessors {
		if minute, ok := accessor(fixture); ok {
			return minute
		}
	}
	return LabelOf(NoMinuteLabel)
}

// ExtractTeamNames resolves home and away names from the participants include.
func ExtractTeamNames(fixture RawFixture) TeamNames {
	var home, away map[string]any
	for _, item := range relationList(fixture["participants"]) {
		participant := asMap(item)
		if participant == nil {
			continue
		}
		switch participantLocation(participant) {
		case "home":
			if home == nil {
				home = participant
			}
		case "away":
			if away == nil {
				away = participant
			}
		}
	}

	return TeamNames{
		Home: participantName(home, DefaultHomeLabel),
		Away: participantName(away, DefaultAwayLabel),
	}
}

// ExtractTrends normalizes the trends include.
func ExtractTrends(fixture RawFixture) []NormalizedTrend {
	return normalizeEntries(relationList(fixture["trends"]), trendTypeIDPaths, trendValuePaths, trendPeriodChain)
}

// ExtractStatistics normalizes the statistics include. Only an explicit
// period number is accepted for statistics.
func ExtractStatistics(fixture RawFixture) []NormalizedTrend {
	return normalizeEntries(relationList(fixture["statistics"]), statisticTypeIDPaths, statisticValuePaths, statisticPeriodChain)
}

func normalizeEntries(
	items []any,
	typeIDPaths [][]string,
	valuePaths [][]string,
	periodChain []func(map[string]any) (int, bool),
) []NormalizedTrend {
	out := make([]NormalizedTrend, 0, len(items))
	for _, item := range items {
		entry := asMap(item)
		trend := NormalizedTrend{}
		if typeID, ok := firstInteger(entry, typeIDPaths); ok {
			trend.TypeID = &typeID
		}
		trend.Value = firstNumber(entry, valuePaths)
		for _, accessor := range periodChain {
			if period, ok := accessor(entry); ok {
				trend.PeriodNumber = &period
				break
			}
		}
		out = append(out, trend)
	}
	return out
}

func activePeriodMinute(fixture map[string]any) (MinuteDisplay, bool) {
	periods := relationList(fixture["periods"])
	active := findPeriod(periods, func(period map[string]any) bool {
		current, ok := period["is_current"].(bool)
		return ok && current
	})
	if active == nil {
		active = findPeriod(periods, func(period map[string]any) bool {
			state, ok := period["state"].(string)
			return ok && state == "live"
		})
	}
	if active == nil {
		return MinuteDisplay{}, false
	}
	minute, ok := jsonNumber(active["minute"])
	if !ok {
		return MinuteDisplay{}, false
	}
	return MinuteOf(minute), true
}

func findPeriod(periods []any, match func(map[string]any) bool) map[string]any {
	for _, item := range periods {
		period := asMap(item)
		if period != nil && match(period) {
			return period
		}
	}
	return nil
}

func numericMinuteAt(path ...string) func(map[string]any) (MinuteDisplay, bool) {
	return func(fixture map[string]any) (MinuteDisplay, bool) {
		minute, ok := jsonNumber(lookup(fixture, path...))
		if !ok {
			return MinuteDisplay{}, false
		}
		return MinuteOf(minute), true
	}
}

func labelAt(path ...string) func(map[string]any) (MinuteDisplay, bool) {
	return func(fixture map[string]any) (MinuteDisplay, bool) {
		label, ok := nonEmptyString(lookup(fixture, path...))
		if !ok {
			return MinuteDisplay{}, false
		}
		return LabelOf(label), true
	}
}

func participantLocation(participant map[string]any) string {
	for _, path := range participantLocationPaths {
		if location, ok := nonEmptyString(lookup(participant, path...)); ok {
			return strings.ToLower(location)
		}
	}
	return ""
}

func participantName(participant map[string]any, fallback string) string {
	if participant == nil {
		return fallback
	}
	name, _ := nonEmptyString(participant["name"])
	shortCode, _ := nonEmptyString(participant["short_code"])
	return firstNonEmpty(name, shortCode, fallback)
}

func periodNumberAt(path ...string) func(map[string]any) (int, bool) {
	return func(entry map[string]any) (int, bool) {
		period, ok := integer(lookup(entry, path...))
		if !ok {
			return 0, false
		}
		return int(period), true
	}
}

func periodFromName(entry map[string]any) (int, bool) {
	name, ok := lookup(entry, "period", "name").(string)
	if !ok {
		return 0, false
	}
	switch {
	case strings.Contains(name, "1"):
		return 1, true
	case strings.Contains(name, "2"):
		return 2, true
	default:
		return 0, false
	}
}

func firstInteger(entry map[string]any, paths [][]string) (int64, bool) {
	for _, path := range paths {
		if value, ok := integer(lookup(entry, path...)); ok {
			return value, true
		}
	}
	return 0, false
}

func firstNumber(entry map[string]any, paths [][]string) float64 {
	for _, path := range paths {
		if value, ok := coerceNumber(lookup(entry, path...)); ok {
			return value
		}
	}
	return 0
}
