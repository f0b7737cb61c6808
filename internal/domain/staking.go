package domain

import (
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type ProgramID string

type StakingRecord struct {
	StakedSince    time.Time
	Staked         bool
	Evicted        bool
	EvictionEndsAt time.Time
}

func (r StakingRecord) StakedFor(now time.Time) time.Duration {
	if !r.Staked || r.StakedSince.IsZero() || now.Before(r.StakedSince) {
		return 0
	}

	return now.Sub(r.StakedSince)
}

// EvictedAt reports whether the eviction window is still open at now. An
// eviction without a reported end stays in force.
func (r StakingRecord) EvictedAt(now time.Time) bool {
	if !r.Evicted {
		return false
	}
	if r.EvictionEndsAt.IsZero() {
		return true
	}

	return now.Before(r.EvictionEndsAt)
}

type StakingProgramState struct {
	ID               ProgramID
	MaxSlots         int
	UsedSlots        int
	RequiredStake    map[Token]decimal.Decimal
	MinimumDuration  time.Duration
	RewardsAvailable bool
	Agent            *StakingRecord
	MigratableTo     []ProgramID
	ObservedAt       time.Time
}

// Clone returns a copy that shares no maps, slices or records with p.
func (p StakingProgramState) Clone() StakingProgramState {
	out := p
	out.RequiredStake = maps.Clone(p.RequiredStake)
	out.MigratableTo = slices.Clone(p.MigratableTo)
	if p.Agent != nil {
		agent := *p.Agent
		out.Agent = &agent
	}
	return out
}

func (p StakingProgramState) AtCapacity() bool {
	return p.UsedSlots >= p.MaxSlots
}

func (p StakingProgramState) AgentStaked() bool {
	return p.Agent != nil && p.Agent.Staked
}

// CanMigrateTo is directional: A listing B does not imply B lists A.
func (p StakingProgramState) CanMigrateTo(target ProgramID) bool {
	return slices.Contains(p.MigratableTo, target)
}

// MinimumDurationEndsAt is the earliest instant the agent may leave the
// program. ok is false when the agent is not staked here.
func (p StakingProgramState) MinimumDurationEndsAt() (time.Time, bool) {
	if !p.AgentStaked() || p.Agent.StakedSince.IsZero() {
		return time.Time{}, false
	}

	return p.Agent.StakedSince.Add(p.MinimumDuration), true
}

// RequiredTokens returns the required stake tokens in a stable order.
func (p StakingProgramState) RequiredTokens() []Token {
	tokens := slices.Collect(maps.Keys(p.RequiredStake))
	slices.Sort(tokens)
	return tokens
}

type StakingPrograms map[ProgramID]StakingProgramState

func (p StakingPrograms) Get(id ProgramID) (StakingProgramState, bool) {
	if p == nil {
		return StakingProgramState{}, false
	}
	state, ok := p[id]
	return state, ok
}

func (p StakingPrograms) IDs() []ProgramID {
	ids := slices.Collect(maps.Keys(p))
	slices.Sort(ids)
	return ids
}
