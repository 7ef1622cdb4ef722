package livescore

import (
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
)

// SportMonks trend and statistic type ids used by the live table.
const (
	TypeCorners          int64 = 34
	TypeDangerousAttacks int64 = 44
)

// RawFixture is one untrusted fixture record decoded from the provider payload.
type RawFixture map[string]any

// NormalizedTrend is a trend or statistic entry after field resolution.
// Value is always finite; TypeID and PeriodNumber are nil when the record did not carry them.
type NormalizedTrend struct {
	TypeID       *int64
	Value        float64
	PeriodNumber *int
}

type TeamNames struct {
	Home string
	Away string
}

type DangerousAttacks struct {
	FirstHalf  float64
	SecondHalf float64
}

// FixtureMetrics is the per-fixture row derived in one poll cycle.
type FixtureMetrics struct {
	ID               string
	HomeName         string
	AwayName         string
	Minute           MinuteDisplay
	Corners          float64
	DangerousAttacks DangerousAttacks
	Delta            float64
}

// MinuteDisplay holds either a numeric match minute or a short status label.
type MinuteDisplay struct {
	minute  float64
	label   string
	numeric bool
}

func MinuteOf(minute float64) MinuteDisplay {
	return MinuteDisplay{minute: minute, numeric: true}
}

func LabelOf(label string) MinuteDisplay {
	return MinuteDisplay{label: label}
}

func (m MinuteDisplay) Minute() (float64, bool) {
	return m.minute, m.numeric
}

func (m MinuteDisplay) Label() string {
	if m.numeric {
		return ""
	}
	return m.label
}

// String renders the clock column: 67' for a minute, the label otherwise.
func (m MinuteDisplay) String() string {
	if m.numeric {
		return strconv.FormatFloat(m.minute, 'f', -1, 64) + "'"
	}
	if m.label == "" {
		return NoMinuteLabel
	}
	return m.label
}

func (m MinuteDisplay) MarshalJSON() ([]byte, error) {
	if m.numeric {
		return []byte(strconv.FormatFloat(m.minute, 'f', -1, 64)), nil
	}
	label := m.label
	if label == "" {
		label = NoMinuteLabel
	}
	return sonic.Marshal(label)
}

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
	PhaseStopped Phase = "stopped"
)

// LiveState is one immutable snapshot of the live table.
// Loading stays true until the first poll cycle completes.
type LiveState struct {
	Phase     Phase
	Loading   bool
	Error     string
	Fixtures  []FixtureMetrics
	Cycle     uint64
	UpdatedAt time.Time
}

func InitialLiveState() LiveState {
	return LiveState{
		Phase:    PhaseIdle,
		Loading:  true,
		Fixtures: []FixtureMetrics{},
	}
}

func (s LiveState) HasError() bool {
	return s.Error != ""
}

// Empty reports a completed, error-free cycle with nothing in play.
func (s LiveState) Empty() bool {
	return !s.Loading && !s.HasError() && len(s.Fixtures) == 0
}
