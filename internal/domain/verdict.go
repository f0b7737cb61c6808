package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DenyReason string

const (
	ReasonLoading               DenyReason = "loading"
	ReasonAlreadySelected       DenyReason = "already_selected"
	ReasonNoRewardsAvailable    DenyReason = "no_rewards_available"
	ReasonNoAvailableSlots      DenyReason = "no_available_slots"
	ReasonInsufficientStake     DenyReason = "insufficient_stake"
	ReasonTransitionInProgress  DenyReason = "transition_in_progress"
	ReasonEvicted               DenyReason = "evicted"
	ReasonMigrationNotSupported DenyReason = "migration_not_supported"
	ReasonMinimumDurationNotMet DenyReason = "minimum_duration_not_met"
	ReasonAgentRunning          DenyReason = "agent_running"
	ReasonNotRunning            DenyReason = "not_running"
)

// Verdict is Allowed when Reason is empty. ReadyAt and Remaining are set for
// reasons that expire on their own; Token, Required and Have for
// ReasonInsufficientStake.
type Verdict struct {
	Reason    DenyReason
	ReadyAt   time.Time
	Remaining time.Duration
	Token     Token
	Required  decimal.Decimal
	Have      decimal.Decimal
}

func Allow() Verdict {
	return Verdict{}
}

func Deny(reason DenyReason) Verdict {
	return Verdict{Reason: reason}
}

func DenyUntil(reason DenyReason, readyAt, now time.Time) Verdict {
	return Verdict{Reason: reason, ReadyAt: readyAt, Remaining: readyAt.Sub(now)}
}

func (v Verdict) Allowed() bool {
	return v.Reason == ""
}

// RemainingAt recomputes the countdown against now. A zero now falls back to
// the remaining duration captured at evaluation time.
func (v Verdict) RemainingAt(now time.Time) time.Duration {
	if now.IsZero() || v.ReadyAt.IsZero() {
		return v.Remaining
	}
	remaining := v.ReadyAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (v Verdict) Explain(now time.Time) string {
	switch v.Reason {
	case "":
		return "Allowed."
	case ReasonLoading:
		return "Still loading balances, staking and deployment data. Try again in a moment."
	case ReasonAlreadySelected:
		return "This staking program is already active for the agent."
	case ReasonNoRewardsAvailable:
		return "The staking program has no rewards available right now."
	case ReasonNoAvailableSlots:
		return "All slots in the staking program are taken."
	case ReasonInsufficientStake:
		return fmt.Sprintf("The staking program requires %s %s but only %s %s is available or staked.",
			v.Required.String(), v.Token, v.Have.String(), v.Token)
	case ReasonTransitionInProgress:
		return "The agent is starting or stopping. Wait for it to finish."
	case ReasonEvicted:
		if v.ReadyAt.IsZero() {
			return "The agent was evicted for missing its performance targets. It can restart once the staking program lifts the eviction."
		}
		return fmt.Sprintf("The agent was evicted for missing its performance targets. It can restart in %s.",
			FormatCountdown(v.RemainingAt(now)))
	case ReasonMigrationNotSupported:
		return "The current staking program does not allow switching to this one."
	case ReasonMinimumDurationNotMet:
		return fmt.Sprintf("The agent must stay staked in the current program for another %s.",
			FormatCountdown(v.RemainingAt(now)))
	case ReasonAgentRunning:
		return "Stop the agent before withdrawing funds."
	case ReasonNotRunning:
		return "The agent is not running."
	default:
		return string(v.Reason)
	}
}

// FormatCountdown renders the two most significant units of d.
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "less than a second"
	}

	d = d.Round(time.Second)
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)

	units := []struct {
		value int
		name  string
	}{
		{days, "day"},
		{hours, "hour"},
		{minutes, "minute"},
		{seconds, "second"},
	}

	parts := make([]string, 0, 2)
	for _, unit := range units {
		if len(parts) == 0 && unit.value == 0 {
			continue
		}
		if len(parts) == 2 {
			break
		}
		if unit.value == 0 {
			break
		}
		parts = append(parts, pluralize(unit.value, unit.name))
	}
	if len(parts) == 0 {
		return "less than a second"
	}

	return strings.Join(parts, " ")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
