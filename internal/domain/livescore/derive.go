package livescore

import (
	"fmt"

	"github.com/riskibarqy/live-dattacks/internal/platform/id"
	"github.com/sourcegraph/conc/iter"
)

const fallbackIDSuffix = "0"

// DeriveCorners sums corner trends across all periods.
func DeriveCorners(fixture RawFixture) float64 {
	return cornersFrom(ExtractTrends(fixture))
}

// DeriveDangerousAttacks splits dangerous attacks by half. Untagged trends count
// toward the first half. When trends carry nothing for either half the
// per-period statistics are used instead.
func DeriveDangerousAttacks(fixture RawFixture) DangerousAttacks {
	return dangerousAttacksFrom(fixture, ExtractTrends(fixture))
}

func cornersFrom(trends []NormalizedTrend) float64 {
	return SumByType(trends, TypeCorners)
}

func dangerousAttacksFrom(fixture RawFixture, trends []NormalizedTrend) DangerousAttacks {
	out := DangerousAttacks{
		FirstHalf:  SumByType(trends, TypeDangerousAttacks, InPeriodOrUntagged(1)),
		SecondHalf: SumByType(trends, TypeDangerousAttacks, InPeriod(2)),
	}
	if out.FirstHalf != 0 || out.SecondHalf != 0 {
		return out
	}

	stats := ExtractStatistics(fixture)
	return DangerousAttacks{
		FirstHalf:  SumByType(stats, TypeDangerousAttacks, InPeriod(1)),
		SecondHalf: SumByType(stats, TypeDangerousAttacks, InPeriod(2)),
	}
}

// Deriver builds FixtureMetrics rows. The id generator is only used for
// fixtures that arrive without an id.
type Deriver struct {
	ids id.Generator
}

func NewDeriver(ids id.Generator) *Deriver {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	return &Deriver{ids: ids}
}

func (d *Deriver) DeriveFixtureMetrics(fixture RawFixture) FixtureMetrics {
	teams := ExtractTeamNames(fixture)
	trends := ExtractTrends(fixture)
	attacks := dangerousAttacksFrom(fixture, trends)

	return FixtureMetrics{
		ID:               d.fixtureID(fixture),
		HomeName:         teams.Home,
		AwayName:         teams.Away,
		Minute:           ExtractMinute(fixture),
		Corners:          cornersFrom(trends),
		DangerousAttacks: attacks,
		Delta:            finiteOrZero(attacks.SecondHalf - attacks.FirstHalf),
	}
}

// DeriveAll maps fixtures to rows in parallel, keeping input order.
func (d *Deriver) DeriveAll(fixtures []RawFixture) []FixtureMetrics {
	if len(fixtures) == 0 {
		return []FixtureMetrics{}
	}
	return iter.Map(fixtures, func(fixture *RawFixture) FixtureMetrics {
		return d.DeriveFixtureMetrics(*fixture)
	})
}

// fixtureID prefers the provider id. The synthesized league-season-random id
// changes on every call.
func (d *Deriver) fixtureID(fixture RawFixture) string {
	if value, ok := identifier(fixture["id"]); ok {
		return value
	}

	league, ok := identifier(fixture["league_id"])
	if !ok {
		league = "x"
	}
	season, ok := identifier(fixture["season_id"])
	if !ok {
		season = "y"
	}
	suffix, err := d.ids.NewID()
	if err != nil || suffix == "" {
		suffix = fallbackIDSuffix
	}
	return fmt.Sprintf("%s-%s-%s", league, season, suffix)
}
