package domain

import "time"

// LimitPeriod is the rolling window over which win-rate limits apply
type LimitPeriod string

const (
	LimitPeriodNone    LimitPeriod = "none"
	LimitPeriodWeek    LimitPeriod = "week"
	LimitPeriodMonth   LimitPeriod = "month"
	LimitPeriodQuarter LimitPeriod = "quarter"
	LimitPeriodYear    LimitPeriod = "year"
)

// WindowStart returns the start of the trailing window ending at now.
// A period of none (or an unknown value) returns the zero time, meaning
// "no window".
func (p LimitPeriod) WindowStart(now time.Time) time.Time {
	switch p {
	case LimitPeriodWeek:
		return now.AddDate(0, 0, -7)
	case LimitPeriodMonth:
		return now.AddDate(0, -1, 0)
	case LimitPeriodQuarter:
		return now.AddDate(0, -3, 0)
	case LimitPeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// WinLimit caps how many qualifying wins a user may accrue inside a rolling
// window. A MaxCount of zero or a period of none disables the limit.
type WinLimit struct {
	MaxCount int         `json:"max_count"`
	Period   LimitPeriod `json:"period"`
}

// Active reports whether the limit is enforced. Only the known rolling
// periods activate it; a misconfigured period disables the limit rather
// than degenerating into an all-time cap.
func (l WinLimit) Active() bool {
	switch l.Period {
	case LimitPeriodWeek, LimitPeriodMonth, LimitPeriodQuarter, LimitPeriodYear:
		return l.MaxCount > 0
	default:
		return false
	}
}

// SettlementConfig carries all settlement-time configuration explicitly so
// the engine never reads ambient settings.
type SettlementConfig struct {
	HuntWinLimit       WinLimit
	TournamentWinLimit WinLimit
}
