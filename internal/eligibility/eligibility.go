// Package eligibility decides whether a lifecycle action is currently
// permitted. Every function is pure: the same Snapshots always produce the
// same Verdict, and nothing here reads a clock or performs I/O.
package eligibility

import (
	"fmt"
	"time"

	"github.com/bnema/agentctl/internal/domain"
)

// Snapshots is the input to every rule. A nil Balances or Programs means the
// store has not loaded yet. Status is the effective deployment status, with
// DeploymentStatusUnknown meaning not loaded. Tracked is the status before an
// open eviction is folded in.
type Snapshots struct {
	Now      time.Time
	Instance domain.AgentInstance
	Status   domain.DeploymentStatus
	Tracked  domain.DeploymentStatus
	Balances *domain.BalanceSet
	Programs domain.StakingPrograms
}

func (s Snapshots) loaded() bool {
	return s.Status != domain.DeploymentStatusUnknown && s.Balances != nil && s.Programs != nil
}

// process is the state of the agent process. An evicted agent keeps running
// until it is stopped.
func (s Snapshots) process() domain.DeploymentStatus {
	if s.Status == domain.DeploymentStatusEvicted && s.Tracked != domain.DeploymentStatusUnknown {
		return s.Tracked
	}
	return s.Status
}

// CanStart checks the instance's selected program.
func CanStart(s Snapshots) domain.Verdict {
	target, ok := s.Programs.Get(s.Instance.StakingProgram)
	if !s.loaded() || !ok || !hasRequiredTokens(s, target) {
		return domain.Deny(domain.ReasonLoading)
	}

	if s.Status == domain.DeploymentStatusDeployed {
		return domain.Deny(domain.ReasonAlreadySelected)
	}
	if v, denied := checkProgram(s, target); denied {
		return v
	}
	if v, denied := checkStatus(s, target); denied {
		return v
	}

	return domain.Allow()
}

// CanMigrate checks a switch from the instance's active program to target.
func CanMigrate(targetID domain.ProgramID, s Snapshots) domain.Verdict {
	target, ok := s.Programs.Get(targetID)
	if !s.loaded() || !ok || !hasRequiredTokens(s, target) {
		return domain.Deny(domain.ReasonLoading)
	}

	activeID := s.Instance.StakingProgram
	active, hasActive := s.Programs.Get(activeID)
	if activeID != "" && !hasActive && activeID != targetID {
		return domain.Deny(domain.ReasonLoading)
	}

	if targetID == activeID {
		return domain.Deny(domain.ReasonAlreadySelected)
	}
	if v, denied := checkProgram(s, target); denied {
		return v
	}

	record := target
	if hasActive {
		record = active
	}
	if v, denied := checkStatus(s, record); denied {
		return v
	}

	if hasActive && active.AgentStaked() && !active.CanMigrateTo(targetID) {
		return domain.Deny(domain.ReasonMigrationNotSupported)
	}
	if hasActive {
		if v, denied := checkMinimumDuration(s, active); denied {
			return v
		}
	}

	return domain.Allow()
}

// CanWithdraw gates moving funds out of the service. The agent must be
// stopped and out of any minimum staking period.
func CanWithdraw(s Snapshots) domain.Verdict {
	if !s.loaded() {
		return domain.Deny(domain.ReasonLoading)
	}
	active, hasActive := s.Programs.Get(s.Instance.StakingProgram)
	if s.Instance.StakingProgram != "" && !hasActive {
		return domain.Deny(domain.ReasonLoading)
	}

	if s.Status.IsTransitioning() {
		return domain.Deny(domain.ReasonTransitionInProgress)
	}
	if s.process() == domain.DeploymentStatusDeployed {
		return domain.Deny(domain.ReasonAgentRunning)
	}
	if hasActive {
		if v, denied := checkMinimumDuration(s, active); denied {
			return v
		}
	}

	return domain.Allow()
}

func CanStop(s Snapshots) domain.Verdict {
	if s.Status == domain.DeploymentStatusUnknown {
		return domain.Deny(domain.ReasonLoading)
	}
	status := s.process()
	if status.IsTransitioning() {
		return domain.Deny(domain.ReasonTransitionInProgress)
	}
	if !status.CanStop() {
		return domain.Deny(domain.ReasonNotRunning)
	}

	return domain.Allow()
}

// Evaluate dispatches on action. target is only read for migrate.
func Evaluate(action domain.Action, target domain.ProgramID, s Snapshots) (domain.Verdict, error) {
	switch action {
	case domain.ActionStart:
		return CanStart(s), nil
	case domain.ActionStop:
		return CanStop(s), nil
	case domain.ActionMigrate:
		if target == "" {
			return domain.Verdict{}, fmt.Errorf("migrate requires a target program")
		}
		return CanMigrate(target, s), nil
	case domain.ActionWithdraw:
		return CanWithdraw(s), nil
	default:
		return domain.Verdict{}, fmt.Errorf("unsupported action %q", action)
	}
}

// hasRequiredTokens reports whether every token the program requires has at
// least one balance entry on the home network. A missing entry is unknown,
// not zero.
func hasRequiredTokens(s Snapshots, program domain.StakingProgramState) bool {
	for _, token := range program.RequiredTokens() {
		if !s.Balances.Has(s.Instance.HomeNetwork, token) {
			return false
		}
	}
	return true
}

func checkProgram(s Snapshots, target domain.StakingProgramState) (domain.Verdict, bool) {
	if !target.RewardsAvailable {
		return domain.Deny(domain.ReasonNoRewardsAvailable), true
	}
	if target.AtCapacity() && !target.AgentStaked() {
		return domain.Deny(domain.ReasonNoAvailableSlots), true
	}

	for _, token := range target.RequiredTokens() {
		required := target.RequiredStake[token]
		have := s.Balances.Total(s.Instance.HomeNetwork, token)
		if have.LessThan(required) {
			return domain.Verdict{
				Reason:   domain.ReasonInsufficientStake,
				Token:    token,
				Required: required,
				Have:     have,
			}, true
		}
	}

	return domain.Verdict{}, false
}

func checkStatus(s Snapshots, program domain.StakingProgramState) (domain.Verdict, bool) {
	if s.Status.IsTransitioning() {
		return domain.Deny(domain.ReasonTransitionInProgress), true
	}
	if s.Status != domain.DeploymentStatusEvicted {
		return domain.Verdict{}, false
	}

	if program.Agent != nil && !program.Agent.EvictionEndsAt.IsZero() {
		return domain.DenyUntil(domain.ReasonEvicted, program.Agent.EvictionEndsAt, s.Now), true
	}
	return domain.Deny(domain.ReasonEvicted), true
}

func checkMinimumDuration(s Snapshots, active domain.StakingProgramState) (domain.Verdict, bool) {
	readyAt, ok := active.MinimumDurationEndsAt()
	if !ok || !s.Now.Before(readyAt) {
		return domain.Verdict{}, false
	}

	return domain.DenyUntil(domain.ReasonMinimumDurationNotMet, readyAt, s.Now), true
}
