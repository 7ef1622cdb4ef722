package httpapi

import (
	"time"

	"github.com/riskibarqy/live-dattacks/internal/domain/livescore"
)

type liveStateDTO struct {
	Phase     string           `json:"phase"`
	Loading   bool             `json:"loading"`
	Error     *string          `json:"error"`
	Empty     bool             `json:"empty"`
	Cycle     uint64           `json:"cycle"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
	Fixtures  []liveFixtureDTO `json:"fixtures"`
}

type liveFixtureDTO struct {
	ID                         string                  `json:"id"`
	HomeTeam                   string                  `json:"homeTeam"`
	AwayTeam                   string                  `json:"awayTeam"`
	Minute                     livescore.MinuteDisplay `json:"minute"`
	Clock                      string                  `json:"clock"`
	Corners                    float64                 `json:"corners"`
	DangerousAttacksFirstHalf  float64                 `json:"dangerousAttacksFirstHalf"`
	DangerousAttacksSecondHalf float64                 `json:"dangerousAttacksSecondHalf"`
	Delta                      float64                 `json:"delta"`
	DeltaTrend                 string                  `json:"deltaTrend"`
}

type streamMessageDTO struct {
	Type string       `json:"type"`
	Data liveStateDTO `json:"data"`
}

func toLiveStateDTO(state livescore.LiveState) liveStateDTO {
	out := liveStateDTO{
		Phase:    string(state.Phase),
		Loading:  state.Loading,
		Empty:    state.Empty(),
		Cycle:    state.Cycle,
		Fixtures: make([]liveFixtureDTO, 0, len(state.Fixtures)),
	}
	if state.HasError() {
		msg := state.Error
		out.Error = &msg
	}
	if !state.UpdatedAt.IsZero() {
		updatedAt := state.UpdatedAt.UTC()
		out.UpdatedAt = &updatedAt
	}
	for _, fixture := range state.Fixtures {
		out.Fixtures = append(out.Fixtures, toLiveFixtureDTO(fixture))
	}
	return out
}

func toLiveFixtureDTO(fixture livescore.FixtureMetrics) liveFixtureDTO {
	return liveFixtureDTO{
		ID:                         fixture.ID,
		HomeTeam:                   fixture.HomeName,
		AwayTeam:                   fixture.AwayName,
		Minute:                     fixture.Minute,
		Clock:                      fixture.Minute.String(),
		Corners:                    fixture.Corners,
		DangerousAttacksFirstHalf:  fixture.DangerousAttacks.FirstHalf,
		DangerousAttacksSecondHalf: fixture.DangerousAttacks.SecondHalf,
		Delta:                      fixture.Delta,
		DeltaTrend:                 deltaTrend(fixture.Delta),
	}
}

func deltaTrend(delta float64) string {
	switch {
	case delta > 0:
		return "up"
	case delta < 0:
		return "down"
	default:
		return "flat"
	}
}
